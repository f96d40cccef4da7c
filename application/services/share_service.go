package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	pkgerrors "designcanvas/pkg/errors"
)

const shareIssuer = "designcanvas"

// ShareClaims are the claims carried by a share token
type ShareClaims struct {
	BlobKey string `json:"blobKey"`
	jwt.RegisteredClaims
}

// ShareService mints and verifies signed share tokens. A token references
// the saved scene blob so a recipient can load a point-in-time copy.
type ShareService struct {
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

// NewShareService creates a new share service
func NewShareService(secret []byte, ttl time.Duration, logger *zap.Logger) *ShareService {
	return &ShareService{secret: secret, ttl: ttl, logger: logger}
}

// CreateToken signs a share token for the given scene and blob key
func (s *ShareService) CreateToken(sceneID, blobKey string) (string, error) {
	now := time.Now()
	claims := ShareClaims{
		BlobKey: blobKey,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    shareIssuer,
			Subject:   sceneID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", pkgerrors.NewInternalError("failed to sign share token").WithCause(err)
	}

	s.logger.Debug("share token created",
		zap.String("sceneID", sceneID),
		zap.Duration("ttl", s.ttl),
	)
	return signed, nil
}

// VerifyToken parses and validates a share token
func (s *ShareService) VerifyToken(tokenString string) (*ShareClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ShareClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, pkgerrors.NewValidationError("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithIssuer(shareIssuer))
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid share token").WithCause(err)
	}

	claims, ok := token.Claims.(*ShareClaims)
	if !ok || !token.Valid {
		return nil, pkgerrors.NewValidationError("invalid share token")
	}
	return claims, nil
}
