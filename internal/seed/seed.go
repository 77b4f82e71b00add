package seed

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/studentportal/internal/app/models"
	appRepos "github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

// StreamAliasPrefix prefixes the friendly URL of every stream term
const StreamAliasPrefix = "/streams/"

// DefaultStreams are created in the stream vocabulary on startup
var DefaultStreams = []string{
	"Computer Science",
	"Mechanical Engineering",
	"Electrical Engineering",
	"Civil Engineering",
	"Business Administration",
}

// CreateDefaultData creates the stream terms and their path aliases if they don't exist.
// Failures are collected and returned together; one bad term does not stop the others.
func CreateDefaultData(ctx context.Context, terms appRepos.ITermRepository, aliases appRepos.IPathAliasRepository, vid string, lgr zerolog.Logger) error {
	lgr.Info().Str("vocabulary", vid).Msg("Checking/Creating default stream terms...")

	var finalErr error
	for weight, name := range DefaultStreams {
		term := &appModels.Term{Vocabulary: vid, Name: name, Weight: weight}
		if err := terms.Create(ctx, term); err != nil {
			lgr.Error().Err(err).Str("name", name).Msg("Error creating stream term")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		alias := StreamAliasPrefix + Slug(name)
		err := aliases.Save(ctx, term.SystemPath(), alias)
		switch {
		case errors.Is(err, apperrors.ErrResourceAlreadyExists):
			lgr.Warn().Str("alias", alias).Int64("termId", term.ID).Msg("Alias already used by another path")
		case err != nil:
			lgr.Error().Err(err).Str("alias", alias).Msg("Error saving stream alias")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Int("count", len(DefaultStreams)).Msg("Default stream terms are in place")
	}
	return finalErr
}

// Slug lower-cases name and joins its words with dashes: "Computer Science" => "computer-science"
func Slug(name string) string {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, "-")
}
