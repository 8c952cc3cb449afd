package resolver

import (
	"errors"

	"woyofal/internal/domain"
	"woyofal/internal/model"
)

type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeFound
	// Maxit не настроен
	OutcomeUnavailable
	// Сетевая ошибка, ответ 4xx/5xx или нечитаемое тело
	OutcomeRemoteFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeUnavailable:
		return "unavailable"
	case OutcomeRemoteFailure:
		return "remote_failure"
	default:
		return "not_found"
	}
}

// Lookup - результат поиска счётчика. Record заполнен только при OutcomeFound,
// Cause - только при OutcomeUnavailable и OutcomeRemoteFailure.
type Lookup struct {
	Outcome Outcome
	Record  model.MeterRecord
	Cause   error
}

func (l Lookup) Found() bool { return l.Outcome == OutcomeFound }

func found(rec model.MeterRecord) Lookup {
	return Lookup{Outcome: OutcomeFound, Record: rec}
}

// failed классифицирует ошибку удалённого клиента.
func failed(err error) Lookup {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return Lookup{Outcome: OutcomeNotFound}
	case errors.Is(err, domain.ErrUnavailable):
		return Lookup{Outcome: OutcomeUnavailable, Cause: err}
	default:
		return Lookup{Outcome: OutcomeRemoteFailure, Cause: err}
	}
}
