package client

import (
	"fmt"

	"github.com/dmitrijs2005/storeconsole/internal/api"
	"github.com/dmitrijs2005/storeconsole/internal/client/models"
)

func loginRequest(creds models.Credentials) api.LoginRequest {
	return api.LoginRequest{Username: creds.Username, Password: string(creds.Password)}
}

func loginResult(resp *api.LoginResponse) (*models.LoginResult, error) {
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: login response without token", ErrBadResponse)
	}
	if resp.User.Username == "" {
		return nil, fmt.Errorf("%w: login response without user", ErrBadResponse)
	}
	r := &models.LoginResult{
		User: models.User{
			ID:       resp.User.ID,
			Name:     resp.User.Name,
			Username: resp.User.Username,
			Role:     models.ParseRole(resp.User.Role),
		},
		Token: resp.Token,
	}
	if resp.Expiry != nil {
		r.ExpiresAt = *resp.Expiry
	}
	return r, nil
}

func summary(s *api.Summary) *models.Summary {
	return &models.Summary{
		SalesTotal:       s.SalesTotal,
		TransactionCount: s.TransactionCount,
		AverageTicket:    s.AverageTicket,
		LowStockProducts: s.LowStockProducts,
		Currency:         s.Currency,
		GeneratedAt:      s.GeneratedAt,
	}
}
