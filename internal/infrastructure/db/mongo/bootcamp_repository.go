package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

const collectionBootcamps = "bootcamps"

type BootcampRepository struct {
	col *mongo.Collection
}

func NewBootcampRepository(db *mongo.Database) *BootcampRepository {
	return &BootcampRepository{col: db.Collection(collectionBootcamps)}
}

type bootcampDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Slug          string             `bson:"slug"`
	Description   string             `bson:"description"`
	Website       string             `bson:"website,omitempty"`
	Phone         string             `bson:"phone,omitempty"`
	Email         string             `bson:"email,omitempty"`
	Address       string             `bson:"address"`
	Careers       []string           `bson:"careers"`
	Housing       bool               `bson:"housing"`
	JobAssistance bool               `bson:"job_assistance"`
	OwnerID       string             `bson:"owner_id"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func toBootcampDoc(b *domain.Bootcamp) bootcampDoc {
	return bootcampDoc{
		Name:          b.Name,
		Slug:          b.Slug,
		Description:   b.Description,
		Website:       b.Website,
		Phone:         b.Phone,
		Email:         b.Email,
		Address:       b.Address,
		Careers:       b.Careers,
		Housing:       b.Housing,
		JobAssistance: b.JobAssistance,
		OwnerID:       b.OwnerID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (d *bootcampDoc) toDomain() *domain.Bootcamp {
	return &domain.Bootcamp{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Slug:          d.Slug,
		Description:   d.Description,
		Website:       d.Website,
		Phone:         d.Phone,
		Email:         d.Email,
		Address:       d.Address,
		Careers:       d.Careers,
		Housing:       d.Housing,
		JobAssistance: d.JobAssistance,
		OwnerID:       d.OwnerID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *BootcampRepository) Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toBootcampDoc(b))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateBootcamp
		}
		return nil, fmt.Errorf("insert bootcamp: %w", err)
	}

	created := *b
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BootcampRepository) FindByID(ctx context.Context, id string) (*domain.Bootcamp, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBootcampNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bootcampDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBootcampNotFound
		}
		return nil, fmt.Errorf("find bootcamp: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BootcampRepository) List(ctx context.Context) ([]*domain.Bootcamp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list bootcamps: %w", err)
	}
	defer cur.Close(ctx)

	var bootcamps []*domain.Bootcamp
	for cur.Next(ctx) {
		var doc bootcampDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode bootcamp: %w", err)
		}
		bootcamps = append(bootcamps, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list bootcamps: %w", err)
	}
	return bootcamps, nil
}

func (r *BootcampRepository) Update(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	oid, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return nil, domain.ErrBootcampNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toBootcampDoc(b)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update bootcamp: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrBootcampNotFound
	}
	return b, nil
}

func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBootcampNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete bootcamp: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBootcampNotFound
	}
	return nil
}

// EnsureIndexes creates the slug and owner lookup indexes.
func (r *BootcampRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
