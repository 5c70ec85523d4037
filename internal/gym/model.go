// Package gym holds the catalog and routine entities shared by the musclegroups,
// exercises and routines packages.
package gym

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "hombre"
	GenderFemale Gender = "mujer"
)

var ErrInvalidGender = errors.New("gender must be hombre or mujer")

func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.TrimSpace(s)); g {
	case GenderMale, GenderFemale:
		return g, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGender, s)
	}
}

type MuscleGroup struct {
	ID         int        `json:"id_grupo_muscular"`
	Nombre     string     `json:"nombre"`
	Ejercicios []Exercise `json:"ejercicios,omitempty"`
}

type Exercise struct {
	ID              int          `json:"id_ejercicio"`
	Nombre          string       `json:"nombre"`
	Descripcion     *string      `json:"descripcion"`
	GrupoMuscularID int          `json:"grupoMuscularId"`
	GrupoMuscular   *MuscleGroup `json:"grupoMuscular,omitempty"`
}

// RoutineSummary is a routine without its links, as embedded in a link.
type RoutineSummary struct {
	ID          int       `json:"id_rutina"`
	Fecha       time.Time `json:"fecha"`
	Genero      Gender    `json:"genero"`
	Descripcion *string   `json:"descripcion"`
}

type Routine struct {
	RoutineSummary
	Ejercicios []RoutineExercise `json:"ejercicios"`
}

// RoutineExercise links one exercise to one routine. Nil Orden sorts after any set value.
type RoutineExercise struct {
	ID           int             `json:"id"`
	RutinaID     int             `json:"rutinaId"`
	EjercicioID  int             `json:"ejercicioId"`
	Series       *int            `json:"series"`
	Repeticiones *int            `json:"repeticiones"`
	Orden        *int            `json:"orden"`
	Ejercicio    *Exercise       `json:"ejercicio,omitempty"`
	Rutina       *RoutineSummary `json:"rutina,omitempty"`
}

// SortLinks orders links by Orden ascending, nil last, ties by ID.
func SortLinks(links []RoutineExercise) {
	sort.SliceStable(links, func(i, j int) bool {
		a, b := links[i].Orden, links[j].Orden
		switch {
		case a == nil && b == nil:
			return links[i].ID < links[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a < *b
		default:
			return links[i].ID < links[j].ID
		}
	})
}

// FlexInt decodes identifiers sent either as JSON numbers or numeric strings.
// Null, empty string and 0 all decode to 0, which callers treat as missing.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("not an integer: %q", s)
		}
		*f = FlexInt(v)
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexInt(v)
	return nil
}

// OptionalInt tells an absent field apart from an explicit null.
type OptionalInt struct {
	Set   bool
	Value *int
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// NullIfZero maps the "falsy means unset" convention of link payloads to nil.
func NullIfZero(v *int) *int {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

// NullIfEmpty returns nil for blank strings.
func NullIfEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
