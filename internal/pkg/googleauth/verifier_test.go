package googleauth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name     string
		audience string
		payload  *idtoken.Payload
		err      error
		want     *Claims
		wantErr  bool
	}{
		{
			name:     "valid token",
			audience: "client-id",
			payload: &idtoken.Payload{
				Subject: "google-sub-1",
				Claims:  map[string]interface{}{"email": "a@x.com", "email_verified": true},
			},
			want: &Claims{Subject: "google-sub-1", Email: "a@x.com", EmailVerified: true},
		},
		{
			name:     "no email claim",
			audience: "client-id",
			payload:  &idtoken.Payload{Subject: "google-sub-1", Claims: map[string]interface{}{}},
			wantErr:  true,
		},
		{
			name:     "signature rejected",
			audience: "client-id",
			err:      errors.New("idtoken: invalid token"),
			wantErr:  true,
		},
		{
			name:    "no client id configured",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAudience string
			v := &idTokenVerifier{
				audience: tt.audience,
				validate: func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
					gotAudience = audience
					return tt.payload, tt.err
				},
			}

			claims, err := v.Verify(context.Background(), "raw-token")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, claims)
			assert.Equal(t, tt.audience, gotAudience)
		})
	}
}
