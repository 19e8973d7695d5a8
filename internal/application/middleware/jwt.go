package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/raceday/pro-upgrade/internal/interfaces/http/response"
)

// JWTClaims represents the JWT claims structure
type JWTClaims struct {
	UserID string `json:"sub"`
	JTI    string `json:"jti"` // JWT ID for revocation
	jwt.RegisteredClaims
}

// JWTMiddleware validates bearer tokens issued by the main RaceDay backend
// and checks the shared revocation blocklist.
type JWTMiddleware struct {
	secret          []byte
	issuer          string
	blocklist       *redis.Client
	blocklistPrefix string
	logger          *zap.Logger
}

// NewJWTMiddleware creates a new JWT middleware
func NewJWTMiddleware(secret, issuer string, redisClient *redis.Client, logger *zap.Logger) *JWTMiddleware {
	return &JWTMiddleware{
		secret:          []byte(secret),
		issuer:          issuer,
		blocklist:       redisClient,
		blocklistPrefix: "jwt:blocked:",
		logger:          logger,
	}
}

// Authenticate validates the JWT token and sets user context
func (j *JWTMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return j.secret, nil
		}, jwt.WithIssuer(j.issuer))

		if err != nil || !token.Valid {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		blocked, err := j.blocklist.Exists(ctx, j.blocklistPrefix+claims.JTI).Result()
		if err != nil {
			j.logger.Error("failed to check token blocklist", zap.Error(err))
			// Fail closed for security
			response.ServiceUnavailable(c, "Token validation unavailable")
			c.Abort()
			return
		}
		if blocked > 0 {
			response.Unauthorized(c, "Token has been revoked")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("jti", claims.JTI)
		c.Next()
	}
}
