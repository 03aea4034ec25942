package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// TaskDocument is the wire shape of a task in the remote collection. The
// document id doubles as the remote id; the local task id never leaves the
// process.
type TaskDocument struct {
	TaskName    string    `firestore:"taskname"`
	Description string    `firestore:"description"`
	Deadline    time.Time `firestore:"deadline"`
	Priority    string    `firestore:"priority"`
	Category    string    `firestore:"category"`
	IsCompleted bool      `firestore:"completed"`
	ImagePath   string    `firestore:"imagepath,omitempty"`
	UpdatedAt   time.Time `firestore:"updatedat"`
}

// RemoteTask pairs a document with the remote id it lives under.
type RemoteTask struct {
	RemoteID string
	Doc      TaskDocument
}

// Replica mirrors tasks into a single Firestore collection.
type Replica struct {
	client     *firestore.Client
	collection string
}

func NewReplica(client *firestore.Client, collection string) *Replica {
	return &Replica{client: client, collection: collection}
}

// AllocateID reserves a fresh document id without writing anything.
func (r *Replica) AllocateID() string {
	return r.client.Collection(r.collection).NewDoc().ID
}

func (r *Replica) Put(ctx context.Context, remoteID string, doc TaskDocument) error {
	_, err := r.client.Collection(r.collection).Doc(remoteID).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to write remote task %s: %w", remoteID, err)
	}
	return nil
}

func (r *Replica) GetAll(ctx context.Context) ([]RemoteTask, error) {
	var remote []RemoteTask

	iter := r.client.Collection(r.collection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read remote tasks: %w", err)
		}

		var taskDoc TaskDocument
		if err := doc.DataTo(&taskDoc); err != nil {
			return nil, fmt.Errorf("failed to decode remote task %s: %w", doc.Ref.ID, err)
		}
		remote = append(remote, RemoteTask{RemoteID: doc.Ref.ID, Doc: taskDoc})
	}
	return remote, nil
}

// Delete removes the remote copy. A document that is already gone counts as
// deleted.
func (r *Replica) Delete(ctx context.Context, remoteID string) error {
	_, err := r.client.Collection(r.collection).Doc(remoteID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return fmt.Errorf("failed to delete remote task %s: %w", remoteID, err)
	}
	return nil
}
