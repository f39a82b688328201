package protocol

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrEmptyFrame   = errors.New("protocol: empty frame")
	ErrEmptyPayload = errors.New("protocol: empty payload")
	ErrNoType       = errors.New("protocol: envelope without type")
)

// Envelope 所有二进制帧的外层
type Envelope struct {
	T string             `msgpack:"t"`
	P msgpack.RawMessage `msgpack:"p,omitempty"`
}

// Encode 编码一帧；payload 为 nil 时生成无负载帧（如 jump）
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, ErrNoType
	}
	e := Envelope{T: t}
	if payload != nil {
		pb, err := msgpack.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", t, err)
		}
		e.P = pb
	}
	return msgpack.Marshal(&e)
}

// MustEncode 用于编码常量帧，失败即 panic
func MustEncode(t string, payload any) []byte {
	b, err := Encode(t, payload)
	if err != nil {
		panic(err)
	}
	return b
}

// DecodeEnvelope 解出外层
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, ErrEmptyFrame
	}
	var e Envelope
	if err := msgpack.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if e.T == "" {
		return Envelope{}, ErrNoType
	}
	return e, nil
}

// DecodePayload 按类型 T 解出负载
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("%w for type %q", ErrEmptyPayload, env.T)
	}
	if err := msgpack.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", env.T, err)
	}
	return out, nil
}
