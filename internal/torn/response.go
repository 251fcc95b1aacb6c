package torn

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/leighmacdonald/hosp-tui/internal/network/encoding"
)

// HospitalTimestampKey is the states entry holding the unix time a player leaves hospital.
const HospitalTimestampKey = "hospital_timestamp"

var (
	errMissingName   = errors.New("player payload missing name")
	errMissingStates = errors.New("player payload missing states")
	errMissingError  = errors.New("error payload missing error object")
	errMissingCode   = errors.New("error payload missing numeric code")
	errNumOrText     = errors.New("value is neither an integer nor a string")
)

// PlayerSnapshot is the success payload of a user lookup.
type PlayerSnapshot struct {
	Name string `json:"name"`
	// States holds named unix timestamps, eg. hospital_timestamp and jail_timestamp.
	States map[string]int64 `json:"states"`
}

// UnmarshalJSON only accepts documents carrying a non-empty name and a states object. This is what
// keeps an error payload from being mistaken for a player.
func (p *PlayerSnapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   *string          `json:"name"`
		States map[string]int64 `json:"states"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Name == nil || *raw.Name == "" {
		return errMissingName
	}

	if raw.States == nil {
		return errMissingStates
	}

	p.Name = *raw.Name
	p.States = raw.States

	return nil
}

// ReleaseTime returns when the player leaves hospital. A player without a hospital entry is
// not hospitalised, which is reported as the unix epoch.
func (p PlayerSnapshot) ReleaseTime() time.Time {
	return time.Unix(p.States[HospitalTimestampKey], 0)
}

// NumOrText is an untagged union of an integer or a string as found in error payloads.
type NumOrText struct {
	num   int64
	text  string
	isNum bool
}

func Num(value int64) NumOrText {
	return NumOrText{num: value, isNum: true}
}

func Text(value string) NumOrText {
	return NumOrText{text: value}
}

// Int returns the numeric value, ok is false for text values.
func (v NumOrText) Int() (int64, bool) {
	return v.num, v.isNum
}

// Text returns the string value, ok is false for numeric values.
func (v NumOrText) Text() (string, bool) {
	return v.text, !v.isNum
}

func (v NumOrText) String() string {
	if v.isNum {
		return strconv.FormatInt(v.num, 10)
	}

	return v.text
}

// UnmarshalJSON probes the wire value: integer first, then string.
func (v *NumOrText) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errNumOrText
	}

	var num int64
	if err := json.Unmarshal(data, &num); err == nil {
		*v = Num(num)

		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*v = Text(text)

		return nil
	}

	return fmt.Errorf("%w: %s", errNumOrText, string(data))
}

func (v NumOrText) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return json.Marshal(v.num)
	}

	return json.Marshal(v.text)
}

// ErrorEnvelope is the payload the api returns instead of the requested resource when a request
// is rejected, eg. {"error": {"code": 6, "error": "Incorrect ID"}}.
type ErrorEnvelope struct {
	Error map[string]NumOrText `json:"error"`
}

// UnmarshalJSON requires the error object and a numeric code inside it. A decoded envelope is
// therefore always safe to Classify.
func (e *ErrorEnvelope) UnmarshalJSON(data []byte) error {
	var raw struct {
		Error map[string]NumOrText `json:"error"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Error == nil {
		return errMissingError
	}

	if _, ok := raw.Error["code"].Int(); !ok {
		return errMissingCode
	}

	e.Error = raw.Error

	return nil
}

// Code returns the numeric classification code.
func (e ErrorEnvelope) Code() (int64, bool) {
	value, found := e.Error["code"]
	if !found {
		return 0, false
	}

	return value.Int()
}

// Message returns the human readable error text, if any.
func (e ErrorEnvelope) Message() string {
	value, found := e.Error["error"]
	if !found {
		return ""
	}

	return value.String()
}

// Response holds exactly one of a decoded success value or an error envelope.
type Response[T any] struct {
	Value    T
	Envelope *ErrorEnvelope
}

func (r Response[T]) IsError() bool {
	return r.Envelope != nil
}

// Decode disambiguates a response body by content. It first tries the success shape T and falls
// back to ErrorEnvelope. T must reject foreign documents on its own, see PlayerSnapshot. A body
// matching neither shape returns an error wrapping ErrDecode.
func Decode[T any](body []byte) (Response[T], error) {
	value, errValue := encoding.DecodeBytes[T](body)
	if errValue == nil {
		return Response[T]{Value: value}, nil
	}

	envelope, errEnvelope := encoding.DecodeBytes[ErrorEnvelope](body)
	if errEnvelope != nil {
		return Response[T]{}, errors.Join(errValue, errEnvelope, ErrDecode)
	}

	return Response[T]{Envelope: &envelope}, nil
}
