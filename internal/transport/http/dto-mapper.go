package http

import (
	"errors"
	"net/http"

	"trackersync/internal/domain"
)

func storyToDto(info domain.StoryInfo) StoryDTO {
	return StoryDTO{
		ID:         info.ID,
		Name:       info.Name,
		Kind:       info.Kind,
		State:      string(info.State),
		Owner:      info.Owner,
		PullNumber: info.PullNumber,
	}
}

func passResultToDto(r domain.PassResult) PassResultDTO {
	delivered := make([]StoryDTO, 0, len(r.Delivered))
	for _, info := range r.Delivered {
		delivered = append(delivered, storyToDto(info))
	}

	failures := make([]FailureDTO, 0, len(r.Failures))
	for _, f := range r.Failures {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		failures = append(failures, FailureDTO{
			StoryID: f.StoryID,
			Stage:   string(f.Stage),
			Message: msg,
		})
	}

	return PassResultDTO{
		Kind:        string(r.Kind),
		PullNumber:  r.PullNumber,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
		Scanned:     r.Scanned,
		Delivered:   delivered,
		Failures:    failures,
		Interrupted: r.Interrupted,
	}
}

func passRecordToDto(r domain.PassRecord) PassRecordDTO {
	return PassRecordDTO{
		ID:          r.ID,
		Kind:        string(r.Kind),
		PullNumber:  r.PullNumber,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
		Scanned:     r.Scanned,
		Delivered:   r.Delivered,
		Failures:    r.Failures,
		Interrupted: r.Interrupted,
	}
}

func mappingDomainErrors(err error) (int, ErrorResponse) {
	var code string
	var status int

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		code = "NOT_FOUND"

	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusBadGateway
		code = "UPSTREAM_UNAUTHORIZED"

	case errors.Is(err, domain.ErrTransitionRejected):
		status = http.StatusConflict
		code = "TRANSITION_REJECTED"

	case errors.Is(err, domain.ErrTransport):
		status = http.StatusBadGateway
		code = "UPSTREAM_UNAVAILABLE"

	default:
		status = http.StatusInternalServerError
		code = "INTERNAL"
	}

	return status, ErrorResponse{
		Error: errorBody{
			Code:    code,
			Message: err.Error(),
		},
	}
}
