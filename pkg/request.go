package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

var (
	ErrEmptyParam   = errors.New("param empty")
	ErrInvalidParam = errors.New("param is not an integer")
)

// ParseIntVar reads a mux path variable and parses it as an integer.
func ParseIntVar(r *http.Request, name string) (int, error) {
	return ParseInt(mux.Vars(r)[name])
}

// ParseInt parses an identifier coming from a path or a query string.
func ParseInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrEmptyParam
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidParam, raw)
	}
	return v, nil
}

// DecodeJSONBody decodes the request body into dst.
func DecodeJSONBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body empty")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode json body: %w", err)
	}
	return nil
}
