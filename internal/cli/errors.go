package cli

import (
	"errors"

	"github.com/aidanlsb/comic/internal/comic"
	"github.com/aidanlsb/comic/internal/config"
	"github.com/aidanlsb/comic/internal/dates"
	"github.com/aidanlsb/comic/internal/index"
	"github.com/aidanlsb/comic/internal/paths"
	"github.com/aidanlsb/comic/internal/ui"
	"github.com/aidanlsb/comic/internal/vault"
)

// Error codes for structured error responses. These codes are stable.
const (
	// Vault errors
	ErrVaultNotFound     = "VAULT_NOT_FOUND"
	ErrVaultNotSpecified = "VAULT_NOT_SPECIFIED"
	ErrConfigInvalid     = "CONFIG_INVALID"

	// Note errors
	ErrNoteNotFound     = "NOTE_NOT_FOUND"
	ErrNoteExists       = "NOTE_EXISTS"
	ErrRefAmbiguous     = "REF_AMBIGUOUS"
	ErrFileOutsideVault = "FILE_OUTSIDE_VAULT"
	ErrFileWriteError   = "FILE_WRITE_ERROR"

	// Plot errors
	ErrNoActiveNote = "NO_ACTIVE_NOTE"
	ErrNotPlotEvent = "NOT_PLOT_EVENT"
	ErrSelfLink     = "SELF_LINK"

	// Validation errors
	ErrMissingField   = "MISSING_FIELD"
	ErrInvalidValue   = "INVALID_VALUE"
	ErrInvalidDate    = "INVALID_DATE"
	ErrUnknownSetting = "UNKNOWN_SETTING"

	// Input errors
	ErrMissingArgument = "MISSING_ARGUMENT"
	ErrCancelled       = "CANCELLED"

	// Database errors
	ErrDatabaseError = "DATABASE_ERROR"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// errSilent is returned after a JSON error envelope was written, so the
// process exits non-zero without printing twice.
var errSilent = errors.New("error already reported")

type errorMapping struct {
	target     error
	code       string
	suggestion string
}

var errorMappings = []errorMapping{
	{comic.ErrNoActiveNote, ErrNoActiveNote, "Run 'comic open <event>' or pass --from <event>"},
	{comic.ErrNotPlotEvent, ErrNotPlotEvent, "Open a note under the plot folder first"},
	{comic.ErrSelfLink, ErrSelfLink, ""},
	{comic.ErrMissingField, ErrMissingField, ""},
	{comic.ErrInvalidField, ErrInvalidValue, ""},
	{comic.ErrCancelled, ErrCancelled, ""},
	{ui.ErrInvalidChoice, ErrInvalidValue, ""},
	{dates.ErrInvalidDate, ErrInvalidDate, "Dates use YYYY-MM-DD"},
	{dates.ErrNegativeIncrement, ErrInvalidValue, ""},
	{vault.ErrNoteExists, ErrNoteExists, "Pick another title or open the existing note"},
	{vault.ErrNoteNotFound, ErrNoteNotFound, ""},
	{vault.ErrAmbiguousRef, ErrRefAmbiguous, "Use the note's path instead"},
	{paths.ErrPathOutsideVault, ErrFileOutsideVault, ""},
	{config.ErrUnknownKey, ErrUnknownSetting, "Run 'comic config show' to list settings"},
	{config.ErrInvalidSetting, ErrInvalidValue, ""},
	{config.ErrComicConfigCorrupt, ErrConfigInvalid, "Fix or delete comic.yaml"},
	{index.ErrNotIndexed, ErrDatabaseError, "Run 'comic reindex'"},
}

// classifyError returns the stable code and a suggestion for err.
func classifyError(err error) (code, suggestion string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.code, m.suggestion
		}
	}
	return ErrInternal, ""
}

// handleError reports err with its mapped code.
func handleError(err error) error {
	if err == nil || errors.Is(err, errSilent) {
		return err
	}
	code, suggestion := classifyError(err)
	return handleErrorMsg(code, err.Error(), suggestion)
}
