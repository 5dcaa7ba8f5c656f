package game

import (
	"errors"
	"fmt"

	"go-splendor/entities"
)

var (
	// ErrActionInvalid 所有非法操作都能用 errors.Is 匹配到它，状态保持不变
	ErrActionInvalid = errors.New("action invalid")
	// ErrInternal 内部状态不一致，正常流程下不会出现
	ErrInternal = errors.New("internal inconsistency")
)

// ErrorKind 非法操作的种类，本身实现 error 以便 errors.Is(err, KindEmptyDeck)
type ErrorKind string

const (
	KindGameNotStarted           ErrorKind = "GameNotStarted"
	KindGameAlreadyBegun         ErrorKind = "GameAlreadyBegun"
	KindGameOver                 ErrorKind = "GameOver"
	KindPlayerExists             ErrorKind = "PlayerExists"
	KindNoPlayers                ErrorKind = "NoPlayers"
	KindNotYourTurn              ErrorKind = "NotYourTurn"
	KindInvalidColorCount        ErrorKind = "InvalidColorCount"
	KindInvalidColor             ErrorKind = "InvalidColor"
	KindTokenLimitExceeded       ErrorKind = "TokenLimitExceeded"
	KindBankInsufficient         ErrorKind = "BankInsufficient"
	KindUnknownTier              ErrorKind = "UnknownTier"
	KindUnknownCard              ErrorKind = "UnknownCard"
	KindCardNotAvailable         ErrorKind = "CardNotAvailable"
	KindReservationLimitExceeded ErrorKind = "ReservationLimitExceeded"
	KindEmptyDeck                ErrorKind = "EmptyDeck"
	KindInsufficientGold         ErrorKind = "InsufficientGold"
	KindExcessiveGoldUsage       ErrorKind = "ExcessiveGoldUsage"
	KindInsufficientFunds        ErrorKind = "InsufficientFunds"
	KindDebugDisabled            ErrorKind = "DebugDisabled"
	KindUnknownAction            ErrorKind = "UnknownAction"
	KindInvalidArguments         ErrorKind = "InvalidArguments"
)

func (k ErrorKind) Error() string { return string(k) }

// ActionError 携带出错的上下文（颜色 / 卡牌 / 上限），方便上层拼提示
type ActionError struct {
	Kind   ErrorKind        `json:"kind"`
	Player string           `json:"player,omitempty"`
	Color  entities.Color   `json:"color,omitempty"`
	Card   *entities.CardID `json:"card,omitempty"`
	Tier   entities.Tier    `json:"tier,omitempty"`
	Limit  int              `json:"limit,omitempty"`
	msg    string
}

func (e *ActionError) Error() string {
	if e.msg == "" {
		return string(e.Kind)
	}
	return e.msg
}

func (e *ActionError) Is(target error) bool {
	if target == ErrActionInvalid {
		return true
	}
	if kind, ok := target.(ErrorKind); ok {
		return kind == e.Kind
	}
	return false
}

func invalid(kind ErrorKind, format string, args ...any) *ActionError {
	return &ActionError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *ActionError) withColor(c entities.Color) *ActionError {
	e.Color = c
	return e
}

func (e *ActionError) withCard(id entities.CardID) *ActionError {
	e.Card = &id
	return e
}

func (e *ActionError) withTier(t entities.Tier) *ActionError {
	e.Tier = t
	return e
}

func (e *ActionError) withLimit(n int) *ActionError {
	e.Limit = n
	return e
}

func (e *ActionError) withPlayer(id string) *ActionError {
	e.Player = id
	return e
}

// KindOf 取出错误种类，不是 ActionError 时返回空串
func KindOf(err error) ErrorKind {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func internalf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}
