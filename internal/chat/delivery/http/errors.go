package http

import (
	"errors"

	"edupal/internal/chat"
	"edupal/internal/chat/repository"
	pkgErrors "edupal/pkg/errors"
)

// mapError translates domain errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, chat.ErrEmptyQuery),
		errors.Is(err, chat.ErrEmptyAudio),
		errors.Is(err, chat.ErrEmptyImage),
		errors.Is(err, chat.ErrEmptyDocument):
		return pkgErrors.NewHTTPError(400, err.Error())

	case errors.Is(err, repository.ErrThreadNotFound):
		return pkgErrors.NewHTTPError(404, "thread not found")
	}

	var ingestErr *chat.IngestError
	if errors.As(err, &ingestErr) {
		return pkgErrors.NewHTTPError(422, ingestErr.Error())
	}

	var classErr *chat.ClassificationError
	if errors.As(err, &classErr) {
		return pkgErrors.NewHTTPError(502, "could not understand the question, please try again")
	}

	var fetchErr *chat.FetchError
	if errors.As(err, &fetchErr) {
		return pkgErrors.NewHTTPError(500, "failed to look up student records")
	}

	var synthErr *chat.SynthesisError
	if errors.As(err, &synthErr) {
		return pkgErrors.NewHTTPError(502, "failed to generate an answer, please try again")
	}

	return pkgErrors.NewHTTPError(500, "internal server error")
}
