package repository

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-splendor/entities"
)

type fakeConn struct {
	subjects []string
	data     [][]byte
	err      error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.data = append(f.data, data)
	return nil
}

func TestPublishState(t *testing.T) {
	conn := &fakeConn{}
	p := NewPublisher(conn)

	if err := p.PublishState("r1", []byte(`{"type":"sync"}`)); err != nil {
		t.Fatalf("PublishState: %v", err)
	}
	if conn.subjects[0] != "splendor.room.r1.state" || string(conn.data[0]) != `{"type":"sync"}` {
		t.Fatalf("published %v %s", conn.subjects, conn.data)
	}
}

func TestPublishResult(t *testing.T) {
	conn := &fakeConn{}
	p := NewPublisher(conn)

	result := entities.MatchResult{RoomID: "r1", Winner: "alice", Turns: 30, Players: []string{"alice", "bob"}, FinishedAt: time.Unix(100, 0).UTC()}
	if err := p.PublishResult(result); err != nil {
		t.Fatalf("PublishResult: %v", err)
	}
	if conn.subjects[0] != ResultSubject("r1") {
		t.Fatalf("subject = %s", conn.subjects[0])
	}
	var got entities.MatchResult
	if err := json.Unmarshal(conn.data[0], &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Winner != "alice" || got.Turns != 30 {
		t.Fatalf("result = %+v", got)
	}
}

func TestPublishError(t *testing.T) {
	p := NewPublisher(&fakeConn{err: errors.New("nats: connection closed")})
	if err := p.PublishState("r1", nil); err == nil {
		t.Fatal("expected error")
	}
}
