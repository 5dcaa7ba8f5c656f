package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// WriteOnlyConn 只写连接，真实客户端和虚拟观察者都实现它
type WriteOnlyConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// ReadWriteConn 读写接口，供真实客户端连接用，支持读取消息
type ReadWriteConn interface {
	WriteOnlyConn
	ReadMessage() (messageType int, p []byte, err error)
}

// client 一条连接。create_room / join_room 成功后绑定到房间和玩家名，之后不再变化
type client struct {
	conn     WriteOnlyConn
	writeMu  sync.Mutex
	roomID   string
	username string
	virtual  bool // 虚拟观察者不算在线玩家
}

func newClient(conn WriteOnlyConn) *client {
	return &client{conn: conn}
}

func (c *client) bound() bool { return c.roomID != "" }

func (c *client) send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.write(data)
}

// gorilla 的连接不支持并发写
func (c *client) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}
