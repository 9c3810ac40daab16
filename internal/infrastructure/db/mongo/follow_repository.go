package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pictobox/pictobox-api/internal/core/domain"
)

const collectionFollows = "follows"

type FollowRepository struct {
	col *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{col: db.Collection(collectionFollows)}
}

type followDocument struct {
	FollowerID string    `bson:"follower_id"`
	FolloweeID string    `bson:"followee_id"`
	CreatedAt  time.Time `bson:"created_at"`
}

// Create inserts a follow edge. The unique (follower_id, followee_id) index
// turns a repeat into domain.ErrAlreadyFollowing.
func (r *FollowRepository) Create(ctx context.Context, follow *domain.Follow) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, followDocument{
		FollowerID: follow.FollowerID,
		FolloweeID: follow.FolloweeID,
		CreatedAt:  follow.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyFollowing
		}
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followeeID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"follower_id": followerID, "followee_id": followeeID})
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, bson.M{"followee_id": userID})
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, bson.M{"follower_id": userID})
}

func (r *FollowRepository) FollowingAmong(ctx context.Context, followerID string, candidateIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(candidateIDs))
	if len(candidateIDs) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"follower_id": followerID, "followee_id": bson.M{"$in": candidateIDs}}
	cur, err := r.col.Find(ctx, filter, options.Find().SetProjection(bson.M{"followee_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("find follows: %w", err)
	}
	var docs []followDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode follows: %w", err)
	}
	for _, d := range docs {
		out[d.FolloweeID] = true
	}
	return out, nil
}

func (r *FollowRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "follower_id", Value: 1}, {Key: "followee_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "followee_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *FollowRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count follows: %w", err)
	}
	return n, nil
}
