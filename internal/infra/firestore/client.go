// internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// ClientWrapper は Firestore クライアントとその設定をラップします。
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
}

// NewClient initializes Firestore through a Firebase app.
// credentialsFile が空文字の場合、ADC(Application Default Credentials)を使用します。
func NewClient(ctx context.Context, projectID string, credentialsFile string) (*ClientWrapper, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore: projectID is empty")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	log.Printf("[firestore] connected (project: %s)", projectID)
	return &ClientWrapper{Client: client, ProjectID: projectID}, nil
}

// Ping は Firestore 接続をテストします。
// Firestore に Ping API は無いため、シンプルな読み取りを試みます。
func (cw *ClientWrapper) Ping(ctx context.Context) error {
	if cw == nil || cw.Client == nil {
		return fmt.Errorf("firestore client is nil")
	}
	if _, err := cw.Client.Collections(ctx).GetAll(); err != nil {
		return fmt.Errorf("firestore ping failed: %w", err)
	}
	return nil
}

// Close は Firestore クライアントをクローズします。
func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}
