package ws

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ScheduleDailyRoomReset 每天 hour 点清理没有在线玩家的房间，ctx 取消后退出
func (h *Hub) ScheduleDailyRoomReset(ctx context.Context, hour int) {
	for {
		duration := durationUntilNext(time.Now(), hour)
		h.logger.Info("距离下次清理房间", zap.Duration("wait", duration))

		timer := time.NewTimer(duration)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		removed := h.Sweep(ctx)
		h.logger.Info("⏰ 清理空闲房间", zap.Strings("rooms", removed))
	}
}

func durationUntilNext(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())

	// 如果当前时间已过该点，则设置为第二天
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
