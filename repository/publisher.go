package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"go-splendor/entities"
)

// natsPublisher *nats.Conn 满足这个接口，测试里可以换成假的
type natsPublisher interface {
	Publish(subject string, data []byte) error
}

// Publisher 把房间事件发到 NATS，供观战 / 统计等其他服务订阅
type Publisher struct {
	nc natsPublisher
}

func NewPublisher(nc natsPublisher) *Publisher {
	return &Publisher{nc: nc}
}

func BrokerConnect(url string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("Splendor-Server"),
		nats.Timeout(10 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(5),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("NATS 连接失败: %w", err)
	}
	return nc, nil
}

func StateSubject(roomID string) string  { return fmt.Sprintf("splendor.room.%s.state", roomID) }
func ResultSubject(roomID string) string { return fmt.Sprintf("splendor.room.%s.result", roomID) }

// PublishState 原样转发房间广播
func (p *Publisher) PublishState(roomID string, message []byte) error {
	if err := p.nc.Publish(StateSubject(roomID), message); err != nil {
		return fmt.Errorf("发布房间[%s]状态失败: %w", roomID, err)
	}
	return nil
}

func (p *Publisher) PublishResult(result entities.MatchResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("序列化对局结果失败: %w", err)
	}
	if err := p.nc.Publish(ResultSubject(result.RoomID), data); err != nil {
		return fmt.Errorf("发布房间[%s]结果失败: %w", result.RoomID, err)
	}
	return nil
}
