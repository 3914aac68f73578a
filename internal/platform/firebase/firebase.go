// Package firebase initializes the Firebase app and the clients built on it.
package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"

	"bloodlink/internal/platform/config"
)

// Clients holds the Firestore and Auth clients of one Firebase app.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

// New initializes the app from base64-decoded service account credentials,
// or application default credentials when none are configured.
func New(ctx context.Context, cfg config.FirebaseConfig) (*Clients, error) {
	var opts []option.ClientOption
	if len(cfg.Credentials) > 0 {
		opts = append(opts, option.WithCredentialsJSON(cfg.Credentials))
	}
	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("get firestore client: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("get auth client: %w", err)
	}
	return &Clients{Firestore: fs, Auth: authClient}, nil
}

func (c *Clients) Close() error {
	return c.Firestore.Close()
}
