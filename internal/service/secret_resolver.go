package service

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// ResolveAPIKey returns the configured value as-is unless it names a
// Secret Manager resource, in which case the secret payload is fetched.
// This lets deployments keep the Gemini key out of the environment.
func ResolveAPIKey(ctx context.Context, configured string, opts ...option.ClientOption) (string, error) {
	if !strings.HasPrefix(configured, "projects/") {
		return configured, nil
	}

	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	name := configured
	if !strings.Contains(name, "/versions/") {
		name += "/versions/latest"
	}

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}
	return string(result.Payload.Data), nil
}
