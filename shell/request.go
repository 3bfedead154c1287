package shell

import (
	"strconv"
	"strings"

	"movierec/errs"
)

type userRequest struct {
	UserID int `input:"user_id" validate:"gt=0"`
}

type menuRequest struct {
	Choice string `input:"choice" validate:"oneof=1 2 3 4"`
}

type searchRequest struct {
	Mode string `input:"mode" validate:"oneof=t g"`
}

type recommendRequest struct {
	Mode string `input:"mode" validate:"oneof=g u s"`
}

type rateRequest struct {
	Value float64 `input:"rating" validate:"rating"`
}

// parseInt rejects anything that is not a plain base-10 integer.
func parseInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errs.Errorf(errs.EINVALID, "not a whole number: %q", raw)
	}
	return n, nil
}

func parseFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, errs.Errorf(errs.EINVALID, "not a number: %q", raw)
	}
	return v, nil
}
