package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// AnswerKey distinguishes graded questions, which carry an index into the
// question's options, from ungraded ones (personality and prediction formats
// have no correct answer). On the wire and in storage it is the option index,
// with -1 meaning ungraded.
type AnswerKey struct {
	Graded bool
	Index  int
}

func GradedAnswer(index int) AnswerKey {
	return AnswerKey{Graded: true, Index: index}
}

func UngradedAnswer() AnswerKey {
	return AnswerKey{}
}

func (a AnswerKey) MarshalJSON() ([]byte, error) {
	if !a.Graded {
		return []byte("-1"), nil
	}
	return []byte(strconv.Itoa(a.Index)), nil
}

func (a *AnswerKey) UnmarshalJSON(data []byte) error {
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("correct_answer must be an integer: %w", err)
	}
	if n < 0 {
		*a = UngradedAnswer()
	} else {
		*a = GradedAnswer(n)
	}
	return nil
}

func (a AnswerKey) Value() (driver.Value, error) {
	if !a.Graded {
		return int64(-1), nil
	}
	return int64(a.Index), nil
}

func (a *AnswerKey) Scan(src interface{}) error {
	var n int64
	switch v := src.(type) {
	case int64:
		n = v
	case []byte:
		parsed, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return err
		}
		n = parsed
	case nil:
		*a = UngradedAnswer()
		return nil
	default:
		return fmt.Errorf("cannot scan %T into AnswerKey", src)
	}
	if n < 0 {
		*a = UngradedAnswer()
	} else {
		*a = GradedAnswer(int(n))
	}
	return nil
}
