package api

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/gestionparc/fleet-api/config"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/models"
)

// Auth holds the dependencies of the authentication middleware: the user
// database for re-fetching the identity row and the shared signing secret
type Auth struct {
	DB     databases.UserDatabase
	Secret []byte
}

// Middleware authenticates the request from its bearer token. The referenced
// user is re-fetched on every request so deleted or deactivated accounts are
// rejected even while their token is still within its TTL.
func (a Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.authenticate(r)
		if err != nil {
			zap.S().Debugw("unauthorized",
				"url", r.URL,
				"reason", err,
			)
			config.ErrorStatus("Token invalide ou expiré", http.StatusUnauthorized, w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// Optional performs the same verification as Middleware but swallows every
// failure and continues unauthenticated. Used by routes that only
// personalize their output for logged-in callers.
func (a Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, err := a.authenticate(r); err == nil {
			r = r.WithContext(WithIdentity(r.Context(), identity))
		}
		next.ServeHTTP(w, r)
	})
}

func (a Auth) authenticate(r *http.Request) (*models.Identity, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, ErrInvalidToken
	}
	claims, err := VerifyToken(strings.TrimPrefix(header, "Bearer "), a.Secret)
	if err != nil {
		return nil, err
	}

	uID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	ctx, cancel := WithQueryTimeout(r.Context())
	defer cancel()

	// account deleted since token issuance
	user, err := a.DB.FindOne(ctx, bson.M{"_id": uID})
	if err != nil {
		return nil, ErrInvalidToken
	}
	// account disabled since token issuance
	if user.Details.Statut != models.StatutActif {
		return nil, ErrInvalidToken
	}

	return &models.Identity{
		ID:     user.ID.Hex(),
		Email:  user.Details.Email,
		Role:   user.Details.Role,
		Nom:    user.Details.Nom,
		Prenom: user.Details.Prenom,
	}, nil
}

// Authorize permits continued handling only when the authenticated identity
// carries one of the allowed roles. It must run after Auth.Middleware.
func Authorize(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if identity == nil {
				config.ErrorStatus("Authentification requise", http.StatusUnauthorized, w, nil)
				return
			}
			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			zap.S().Debugw("forbidden",
				"url", r.URL,
				"role", identity.Role,
			)
			config.ErrorStatus("Accès refusé", http.StatusForbidden, w, nil)
		})
	}
}
