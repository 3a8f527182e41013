// internal/infra/secrets/provider_sm.go
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"google.golang.org/api/option"
	secretspb "google.golang.org/genproto/googleapis/cloud/secretmanager/v1"
)

var (
	ErrNotConfigured  = errors.New("secrets: not configured")
	ErrSecretNotFound = errors.New("secrets: secret not found")
)

// ProviderSM reads secrets from Secret Manager (used for the token signing
// key when JWT_SECRET is not set directly in the environment).
type ProviderSM struct {
	Client    *secretmanager.Client
	ProjectID string
}

func NewProviderSM(ctx context.Context, projectID string, credentialsFile string) (*ProviderSM, error) {
	pid := strings.TrimSpace(projectID)
	if pid == "" {
		return nil, fmt.Errorf("%w: projectID is empty", ErrNotConfigured)
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	c, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &ProviderSM{Client: c, ProjectID: pid}, nil
}

// Access returns the latest version of the named secret as a trimmed string.
func (p *ProviderSM) Access(ctx context.Context, secretID string) (string, error) {
	if p == nil || p.Client == nil {
		return "", ErrNotConfigured
	}
	secretID = strings.TrimSpace(secretID)
	if secretID == "" {
		return "", fmt.Errorf("%w: secretID is empty", ErrNotConfigured)
	}

	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", p.ProjectID, secretID)
	res, err := p.Client.AccessSecretVersion(ctx, &secretspb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSecretNotFound, err)
	}
	if res == nil || res.Payload == nil {
		return "", ErrSecretNotFound
	}
	s := strings.TrimSpace(string(res.Payload.Data))
	if s == "" {
		return "", ErrSecretNotFound
	}
	return s, nil
}

func (p *ProviderSM) Close() error {
	if p == nil || p.Client == nil {
		return nil
	}
	return p.Client.Close()
}
