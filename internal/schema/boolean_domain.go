package schema

import (
	"context"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/kecicz/activerecord-fb-adapter/internal/utils"
)

var (
	missingDomainError   = regexp.MustCompile(`(?i)specified domain or source column \w+ does not exist`)
	duplicateDomainError = regexp.MustCompile(`(?i)already exists|duplicate value|violation of PRIMARY or UNIQUE KEY`)
)

// IsMissingDomain reports whether err is the server's unknown domain failure
func IsMissingDomain(err error) bool {
	return err != nil && missingDomainError.MatchString(err.Error())
}

// whileEnsuringBooleanDomain runs fn and, if it failed on an unknown domain,
// provisions the boolean domain and runs fn once more
func (s *SchemaStatements) whileEnsuringBooleanDomain(ctx context.Context, log logrus.FieldLogger, fn func() error) error {
	err := fn()
	if !IsMissingDomain(err) {
		return err
	}

	if err := s.createBooleanDomain(ctx, log); err != nil {
		return err
	}

	err = fn()
	if IsMissingDomain(err) {
		return utils.NewErrorBuilder(utils.ErrCodeMissingDomain).
			WithDetails(err.Error()).
			WithCause(err).
			Build()
	}
	return err
}

// EnsureBooleanDomain creates the boolean domain unless it already exists
func (s *SchemaStatements) EnsureBooleanDomain(ctx context.Context) error {
	return s.createBooleanDomain(ctx, s.operation("ensure_boolean_domain", ""))
}

// createBooleanDomain creates the shared boolean domain. Losing a creation race
// to another session is not an error.
func (s *SchemaStatements) createBooleanDomain(ctx context.Context, log logrus.FieldLogger) error {
	domain := s.mapper.BooleanDomain()

	err := s.execute(ctx, log, fmt.Sprintf(`
		CREATE DOMAIN %s AS %s
		CHECK (VALUE IN (%s, %s) OR VALUE IS NULL)`,
		domain.Name, domain.Type, s.dialect.Quote(true), s.dialect.Quote(false)))
	if err != nil {
		if duplicateDomainError.MatchString(err.Error()) {
			log.WithField("domain", domain.Name).Debug("boolean domain already exists")
			return nil
		}
		return err
	}

	log.WithField("domain", domain.Name).Info("created boolean domain")
	if s.observer != nil {
		s.observer.DomainProvisioned()
	}
	return nil
}
