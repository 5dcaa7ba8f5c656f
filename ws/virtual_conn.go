// virtual_conn.go
package ws

// StatePublisher 房间广播的外部出口
type StatePublisher interface {
	PublishState(roomID string, message []byte) error
}

// VirtualConn 挂在房间上的虚拟连接，把收到的每条广播转发到 NATS
type VirtualConn struct {
	RoomID    string
	Publisher StatePublisher
}

var _ WriteOnlyConn = (*VirtualConn)(nil) // 编译期断言实现

func (v *VirtualConn) WriteMessage(messageType int, data []byte) error {
	return v.Publisher.PublishState(v.RoomID, data)
}

func (v *VirtualConn) Close() error {
	return nil
}
