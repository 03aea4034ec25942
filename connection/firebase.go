package connection

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

func FBConnection(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}

func FirebaseApp(ctx context.Context, credentialsFile string) (*firebase.App, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	return app, nil
}

func StorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*gcs.BucketHandle, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Storage client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", bucketName, err)
	}
	return bucket, nil
}
