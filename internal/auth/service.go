package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/rutinas/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const revokedKeyPrefix = "rutinas-session-revoked||"

// Service issues session tokens and keeps a revocation list of logged out ones in redis.
// Revoked keys expire together with the token they revoke.
type Service struct {
	issuer      *TokenIssuer
	redisClient *redis.Client
}

func NewService(issuer *TokenIssuer, redisClient *redis.Client) *Service {
	return &Service{
		issuer:      issuer,
		redisClient: redisClient,
	}
}

func revokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}

func (s *Service) Login(userID int, nombre string) (string, time.Time, error) {
	return s.issuer.Issue(userID, nombre)
}

// Logout revokes the token until it would have expired anyway.
// Invalid or expired tokens have nothing to revoke.
func (s *Service) Logout(ctx context.Context, token string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.logout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	claims, err := s.issuer.Verify(token)
	if err != nil {
		if errors.Is(err, ErrMissingSecret) {
			return err
		}
		log.Tracef("logout with invalid token: %s", err)
		return nil
	}

	if s.redisClient == nil || claims.ExpiresAt == nil {
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(s.issuer.Now())
	if ttl <= 0 {
		return nil
	}

	span.SetAttributes(attribute.String("session.id", claims.ID))
	if err := s.redisClient.Set(ctx, revokedKey(claims.ID), claims.Subject, ttl).Err(); err != nil {
		return fmt.Errorf("revoke session [%s]: %w", claims.ID, err)
	}

	return nil
}

// Authenticate verifies the token and checks it was not revoked.
// On redis failure the error is logged and the verified token is accepted.
func (s *Service) Authenticate(ctx context.Context, token string) (_ *Claims, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.authenticate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	claims, err := s.issuer.Verify(token)
	if err != nil {
		return nil, err
	}

	if s.redisClient == nil {
		return claims, nil
	}

	revoked, err := s.redisClient.Exists(ctx, revokedKey(claims.ID)).Result()
	if err != nil {
		log.Errorf("check session revocation [%s]: %s", claims.ID, err)
		return claims, nil
	}
	if revoked > 0 {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}
