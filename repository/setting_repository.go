package repository

import (
	"context"
	"time"

	"catalog-service/models"
	"catalog-service/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SettingRepository struct {
	collection *mongo.Collection
}

func NewSettingRepository(db *mongo.Database) *SettingRepository {
	return &SettingRepository{
		collection: db.Collection("settings"),
	}
}

func (r *SettingRepository) FindByKey(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := r.collection.FindOne(ctx, bson.M{"key": key}).Decode(&setting)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFound("setting")
		}
		return nil, errs.Storage("find setting", err)
	}
	return &setting, nil
}

func (r *SettingRepository) FindAll(ctx context.Context) ([]models.Setting, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.Storage("find settings", err)
	}
	defer cursor.Close(ctx)

	settings := []models.Setting{}
	if err := cursor.All(ctx, &settings); err != nil {
		return nil, errs.Storage("decode settings", err)
	}
	return settings, nil
}

// Upsert enforces key uniqueness by insert-or-replace, never by duplicate
// rejection.
func (r *SettingRepository) Upsert(ctx context.Context, key string, value interface{}) (*models.Setting, error) {
	filter := bson.M{"key": key}
	update := bson.M{"$set": bson.M{
		"key":        key,
		"value":      value,
		"updated_at": time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var setting models.Setting
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&setting)
	if err != nil {
		return nil, errs.Storage("upsert setting", err)
	}
	return &setting, nil
}

// EnsureIndexes creates the unique index backing setting keys.
func (r *SettingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errs.Storage("create setting index", err)
	}
	return nil
}
