package game

import (
	"github.com/mitchellh/mapstructure"

	"go-splendor/entities"
)

// 客户端 action_args 的形状
type actionArgs struct {
	Colors    []entities.Color `json:"colors"`
	Color     entities.Color   `json:"color"`
	Tier      entities.Tier    `json:"tier"`
	CardID    *int             `json:"card_id"`
	GoldUsage []entities.Color `json:"gold_usage"`
}

// ParseAction 把动作名和 action_args 转换成 Action。
// 参数是弱类型解码的：tier 可以是 1 或 "1"，card_id 可以是 3 或 "3"
func ParseAction(name string, args map[string]any) (Action, error) {
	var parsed actionArgs
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &parsed,
		TagName:          "json",
	})
	if err != nil {
		return nil, internalf("创建解码器失败: %v", err)
	}
	if err := decoder.Decode(args); err != nil {
		return nil, invalid(KindInvalidArguments, "动作参数解析失败: %v", err)
	}

	switch ActionKind(name) {
	case ActionTakeDifferent:
		return TakeDifferent{Colors: parsed.Colors}, nil
	case ActionTakeSame:
		if parsed.Color == "" {
			return nil, invalid(KindInvalidArguments, "缺少参数 color")
		}
		return TakeSame{Color: parsed.Color}, nil
	case ActionReserve:
		reserve := Reserve{Tier: parsed.Tier}
		if parsed.CardID != nil {
			id := entities.CardID(*parsed.CardID)
			reserve.CardID = &id
		} else if parsed.Tier == "" {
			return nil, invalid(KindInvalidArguments, "缺少参数 tier 或 card_id")
		}
		return reserve, nil
	case ActionPurchase:
		if parsed.CardID == nil {
			return nil, invalid(KindInvalidArguments, "缺少参数 card_id")
		}
		return Purchase{CardID: entities.CardID(*parsed.CardID), GoldUsage: parsed.GoldUsage}, nil
	case ActionPass, "pass":
		return Pass{}, nil
	default:
		return nil, invalid(KindUnknownAction, "未知动作 %s", name)
	}
}
