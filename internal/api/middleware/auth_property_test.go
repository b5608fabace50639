package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Requests with the valid API key are accepted; requests with a wrong,
// empty or missing key are rejected with 401.
func TestProperty_APIKeyAuthenticationValidity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	tempDir, err := os.MkdirTemp("", "subnav_auth_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	apiKeyManager, err := NewAPIKeyManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create API key manager: %v", err)
	}

	validKey := apiKeyManager.GetCurrentKey()

	newRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(APIKeyMiddleware(apiKeyManager))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		return router
	}

	properties.Property("valid_api_key_accepted", prop.ForAll(
		func(_ string) bool {
			req, _ := http.NewRequest("GET", "/test", nil)
			req.Header.Set(APIKeyHeader, validKey)

			w := httptest.NewRecorder()
			newRouter().ServeHTTP(w, req)

			return w.Code == http.StatusOK
		},
		gen.AlphaString(),
	))

	properties.Property("missing_api_key_rejected", prop.ForAll(
		func(_ string) bool {
			req, _ := http.NewRequest("GET", "/test", nil)
			// No API key header

			w := httptest.NewRecorder()
			newRouter().ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
	))

	properties.Property("invalid_api_key_rejected", prop.ForAll(
		func(invalidKey string) bool {
			// Skip if the random key happens to match the valid key
			if invalidKey == validKey {
				return true
			}

			req, _ := http.NewRequest("GET", "/test", nil)
			req.Header.Set(APIKeyHeader, invalidKey)

			w := httptest.NewRecorder()
			newRouter().ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
	))

	properties.Property("empty_api_key_rejected", prop.ForAll(
		func(_ int) bool {
			req, _ := http.NewRequest("GET", "/test", nil)
			req.Header.Set(APIKeyHeader, "")

			w := httptest.NewRecorder()
			newRouter().ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.Int(),
	))

	properties.TestingRun(t)
}

// ValidateKey returns the same verdict every time for the same input.
func TestProperty_APIKeyValidationConsistency(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	tempDir, err := os.MkdirTemp("", "subnav_key_validation_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	apiKeyManager, err := NewAPIKeyManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create API key manager: %v", err)
	}

	validKey := apiKeyManager.GetCurrentKey()

	properties.Property("validate_key_consistent_results", prop.ForAll(
		func(key string) bool {
			result1 := apiKeyManager.ValidateKey(key)
			result2 := apiKeyManager.ValidateKey(key)

			if result1 != result2 {
				return false
			}

			if key == validKey {
				return result1 == true
			}
			return result1 == false
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// JWT tokens roundtrip their claims; garbage tokens and tokens signed
// with a different secret are rejected.
func TestProperty_JWTTokenValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	jwtManager := NewJWTManager("test-secret-key", time.Hour)

	emailGen := gen.RegexMatch(`[a-z]{1,12}@[a-z]{1,8}\.com`)

	properties.Property("valid_jwt_token_accepted", prop.ForAll(
		func(userID uint, email string) bool {
			token, _, err := jwtManager.GenerateToken(userID, email)
			if err != nil {
				return false
			}

			claims, err := jwtManager.ValidateToken(token)
			if err != nil {
				return false
			}

			return claims.UserID == userID && claims.Email == email
		},
		gen.UIntRange(1, 10000),
		emailGen,
	))

	properties.Property("invalid_jwt_token_rejected", prop.ForAll(
		func(invalidToken string) bool {
			_, err := jwtManager.ValidateToken(invalidToken)
			return err != nil
		},
		gen.AlphaString(),
	))

	properties.Property("tokens_from_different_secrets_rejected", prop.ForAll(
		func(userID uint, email string) bool {
			otherManager := NewJWTManager("different-secret", time.Hour)
			token, _, err := otherManager.GenerateToken(userID, email)
			if err != nil {
				return false
			}

			_, err = jwtManager.ValidateToken(token)
			return err != nil
		},
		gen.UIntRange(1, 10000),
		emailGen,
	))

	properties.TestingRun(t)
}

// JWTMiddleware puts the authenticated identity into the request context.
func TestProperty_JWTMiddlewareContextPropagation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	jwtManager := NewJWTManager("context-test-secret", time.Hour)

	properties.Property("claims_visible_to_handlers", prop.ForAll(
		func(userID uint, email string) bool {
			token, _, err := jwtManager.GenerateToken(userID, email)
			if err != nil {
				return false
			}

			var gotID uint
			var gotEmail string
			var idOK, emailOK bool

			router := gin.New()
			router.Use(JWTMiddleware(jwtManager))
			router.GET("/me", func(c *gin.Context) {
				gotID, idOK = GetUserIDFromContext(c)
				gotEmail, emailOK = GetEmailFromContext(c)
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			req, _ := http.NewRequest("GET", "/me", nil)
			req.Header.Set(AuthorizationHeader, BearerPrefix+token)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			return w.Code == http.StatusOK &&
				idOK && emailOK &&
				gotID == userID && gotEmail == email
		},
		gen.UIntRange(1, 10000),
		gen.RegexMatch(`[a-z]{1,12}@[a-z]{1,8}\.com`),
	))

	properties.Property("missing_bearer_token_rejected", prop.ForAll(
		func(_ int) bool {
			router := gin.New()
			router.Use(JWTMiddleware(jwtManager))
			router.GET("/me", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			req, _ := http.NewRequest("GET", "/me", nil)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.Int(),
	))

	properties.TestingRun(t)
}

// Resetting the API key invalidates the old key, the replacement works
// for authentication, and the new key survives a manager restart.
func TestProperty_KeyResetValidity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("old_key_invalid_after_reset", prop.ForAll(
		func(_ int) bool {
			tempDir, err := os.MkdirTemp("", "subnav_reset_test_*")
			if err != nil {
				return false
			}
			defer os.RemoveAll(tempDir)

			apiKeyManager, err := NewAPIKeyManager(tempDir)
			if err != nil {
				return false
			}

			oldKey := apiKeyManager.GetCurrentKey()
			if !apiKeyManager.ValidateKey(oldKey) {
				return false
			}

			newKey, err := apiKeyManager.ResetKey()
			if err != nil {
				return false
			}

			if apiKeyManager.ValidateKey(oldKey) {
				return false
			}
			if !apiKeyManager.ValidateKey(newKey) {
				return false
			}
			return oldKey != newKey
		},
		gen.Int(),
	))

	properties.Property("new_key_usable_after_reset", prop.ForAll(
		func(_ int) bool {
			tempDir, err := os.MkdirTemp("", "subnav_reset_auth_*")
			if err != nil {
				return false
			}
			defer os.RemoveAll(tempDir)

			apiKeyManager, err := NewAPIKeyManager(tempDir)
			if err != nil {
				return false
			}

			newKey, err := apiKeyManager.ResetKey()
			if err != nil {
				return false
			}

			router := gin.New()
			router.Use(APIKeyMiddleware(apiKeyManager))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			req, _ := http.NewRequest("GET", "/test", nil)
			req.Header.Set(APIKeyHeader, newKey)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			return w.Code == http.StatusOK
		},
		gen.Int(),
	))

	properties.Property("key_persists_after_reset", prop.ForAll(
		func(_ int) bool {
			tempDir, err := os.MkdirTemp("", "subnav_persist_*")
			if err != nil {
				return false
			}
			defer os.RemoveAll(tempDir)

			manager1, err := NewAPIKeyManager(tempDir)
			if err != nil {
				return false
			}

			newKey, err := manager1.ResetKey()
			if err != nil {
				return false
			}

			// A fresh manager instance simulates a restart
			manager2, err := NewAPIKeyManager(tempDir)
			if err != nil {
				return false
			}

			if manager2.GetCurrentKey() != newKey {
				return false
			}
			return manager2.ValidateKey(newKey)
		},
		gen.Int(),
	))

	properties.TestingRun(t)
}

// Generated keys are hex encoded at the configured byte length.
func TestProperty_ResetKeyFormat(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("reset_key_has_correct_format", prop.ForAll(
		func(_ int) bool {
			tempDir, err := os.MkdirTemp("", "subnav_key_format_*")
			if err != nil {
				return false
			}
			defer os.RemoveAll(tempDir)

			apiKeyManager, err := NewAPIKeyManager(tempDir)
			if err != nil {
				return false
			}

			newKey, err := apiKeyManager.ResetKey()
			if err != nil {
				return false
			}

			if len(newKey) != APIKeyLength*2 {
				return false
			}
			for _, c := range newKey {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					return false
				}
			}
			return true
		},
		gen.Int(),
	))

	properties.TestingRun(t)
}
