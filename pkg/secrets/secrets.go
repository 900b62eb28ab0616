package secrets

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// Provider reads secret values from GCP Secret Manager. Used at startup to
// resolve credentials that must not live in env files.
type Provider struct {
	client    *secretmanager.Client
	projectID string
}

func NewProvider(ctx context.Context, projectID string) (*Provider, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, fmt.Errorf("secrets: project id is empty")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("secrets: create client: %w", err)
	}

	return &Provider{client: client, projectID: projectID}, nil
}

// Get returns the latest version of the named secret.
func (p *Provider) Get(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("secrets: secret name is empty")
	}

	fqn := "projects/" + p.projectID + "/secrets/" + name + "/versions/latest"
	resp, err := p.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: fqn})
	if err != nil {
		return "", fmt.Errorf("secrets: access %s: %w", fqn, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("secrets: empty payload for %s", fqn)
	}

	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

func (p *Provider) Close() error {
	return p.client.Close()
}
