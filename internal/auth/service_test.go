package auth_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/peoplepulse/peoplepulse/internal"
	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
	"github.com/peoplepulse/peoplepulse/internal/auth"
)

type mockUserRepository struct {
	usersByEmail map[string]*auth.User
	usersByID    map[int64]*auth.User
}

func newMockUserRepository(users ...*auth.User) *mockUserRepository {
	repo := &mockUserRepository{
		usersByEmail: make(map[string]*auth.User),
		usersByID:    make(map[int64]*auth.User),
	}
	for _, u := range users {
		repo.usersByEmail[u.Email] = u
		repo.usersByID[u.ID] = u
	}
	return repo
}

func (m *mockUserRepository) GetByEmail(email string) (*auth.User, error) {
	if u, ok := m.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func (m *mockUserRepository) GetByID(userID int64) (*auth.User, error) {
	if u, ok := m.usersByID[userID]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

var _ = Describe("Auth Service", func() {
	const (
		accessSecret  = "access-secret-for-tests-0123456789abcdef"
		refreshSecret = "refresh-secret-for-tests-0123456789abcdef"
		password      = "correct horse battery staple"
	)

	var (
		repo     *mockUserRepository
		tokenGen *auth.JWTTokenGenerator
		service  *auth.Service
		active   *auth.User
		inactive *auth.User
	)

	BeforeEach(func() {
		hash, err := auth.HashPassword(password, 4)
		Expect(err).NotTo(HaveOccurred())

		active = &auth.User{
			ID:           7,
			Email:        "jon.berg@peoplepulse.dev",
			PasswordHash: hash,
			DisplayName:  "Jon Berg",
			Role:         accesscontrol.RoleEmployee,
			Department:   accesscontrol.DepartmentEngineering,
			IsActive:     true,
		}
		inactive = &auth.User{
			ID:           8,
			Email:        "paula.mendes@peoplepulse.dev",
			PasswordHash: hash,
			DisplayName:  "Paula Mendes",
			Role:         accesscontrol.RoleEmployee,
			Department:   accesscontrol.DepartmentMarketing,
			IsActive:     false,
		}

		repo = newMockUserRepository(active, inactive)
		tokenGen = auth.NewJWTTokenGenerator(accessSecret, refreshSecret, 15*time.Minute, 7*24*time.Hour)
		service = auth.NewService(repo, tokenGen, 4)
	})

	Describe("Authenticate", func() {
		It("should return tokens for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    active.Email,
				Password: password,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
			Expect(tokens.AccessToken).NotTo(Equal(tokens.RefreshToken))
		})

		It("should reject a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    active.Email,
				Password: "wrong",
			})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject an unknown email", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "nobody@peoplepulse.dev",
				Password: password,
			})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject a deactivated account even with valid credentials", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    inactive.Email,
				Password: password,
			})
			Expect(err).To(Equal(internal.ErrUserInactive))
		})

		It("should reject an empty password before touching the repository", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: active.Email})
			var validationErr auth.ValidationError
			Expect(errors.As(err, &validationErr)).To(BeTrue())
		})
	})

	Describe("ValidateAccessToken", func() {
		It("should round-trip claims through a signed access token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    active.Email,
				Password: password,
			})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(active.ID))
			Expect(claims.Email).To(Equal(active.Email))
		})

		It("should reject a garbage token", func() {
			_, err := service.ValidateAccessToken("not.a.token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should reject an expired token", func() {
			expiredGen := &auth.JWTTokenGenerator{
				AccessTokenSecret:  []byte(accessSecret),
				RefreshTokenSecret: []byte(refreshSecret),
				AccessTokenTTL:     -time.Minute,
				RefreshTokenTTL:    7 * 24 * time.Hour,
			}
			token, err := expiredGen.GenerateAccessToken(active.ID, active.Email)
			Expect(err).NotTo(HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			Expect(err).To(Equal(internal.ErrTokenExpired))
		})

		It("should reject a token signed with a different secret", func() {
			otherGen := auth.NewJWTTokenGenerator("another-secret-entirely-0123456789abcdef", refreshSecret, 15*time.Minute, 7*24*time.Hour)
			token, err := otherGen.GenerateAccessToken(active.ID, active.Email)
			Expect(err).NotTo(HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("RefreshTokens", func() {
		It("should issue a fresh token pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    active.Email,
				Password: password,
			})
			Expect(err).NotTo(HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(refreshed.AccessToken).NotTo(BeEmpty())
			Expect(refreshed.RefreshToken).NotTo(BeEmpty())
		})

		It("should refuse a refresh for a deactivated account", func() {
			token, err := tokenGen.GenerateRefreshToken(inactive.ID, inactive.Email)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.RefreshTokens(token)
			Expect(err).To(Equal(internal.ErrUserInactive))
		})
	})

	Describe("GetPrincipal", func() {
		It("should project the account into a principal", func() {
			principal, err := service.GetPrincipal(active.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(principal.ID).To(Equal(active.ID))
			Expect(principal.DisplayName).To(Equal("Jon Berg"))
			Expect(principal.Role).To(Equal(accesscontrol.RoleEmployee))
			Expect(principal.Department).To(Equal(accesscontrol.DepartmentEngineering))
		})

		It("should return not found for an unknown user id", func() {
			_, err := service.GetPrincipal(99999)
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})

		It("should refuse a deactivated account", func() {
			_, err := service.GetPrincipal(inactive.ID)
			Expect(err).To(Equal(internal.ErrUserInactive))
		})
	})
})
