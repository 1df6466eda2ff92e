package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobhive/jobboard-api/internal/core/domain"
)

const jobsCollection = "jobs"

type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{coll: db.Collection(jobsCollection)}
}

type mongoJob struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Title        string               `bson:"title"`
	Slug         string               `bson:"slug"`
	Description  string               `bson:"description"`
	Company      string               `bson:"company"`
	Topic        string               `bson:"topic"`
	Salary       float64              `bson:"salary"`
	Address      string               `bson:"address"`
	Location     string               `bson:"location"`
	GeoPoint     domain.GeoPoint      `bson:"geo_point"`
	OwnerID      string               `bson:"owner_id"`
	Active       bool                 `bson:"active"`
	CreatedAt    time.Time            `bson:"created_at"`
	ExpiresAt    time.Time            `bson:"expires_at"`
	Applications []domain.Application `bson:"applications"`
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoJob(job)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		// slug carries the only unique index on this collection
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("insert job: %w", err)
	}

	created := *job
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *JobRepository) FindByIDSlug(ctx context.Context, id, slug string) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid, "slug": slug})
}

func (r *JobRepository) findOne(ctx context.Context, filter bson.M) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mj mongoJob
	if err := r.coll.FindOne(ctx, filter).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return mj.toDomain(), nil
}

func (r *JobRepository) List(ctx context.Context) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return decodeJobs(ctx, cursor)
}

func (r *JobRepository) Update(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(job.ID)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       job.Title,
		"slug":        job.Slug,
		"description": job.Description,
		"company":     job.Company,
		"topic":       job.Topic,
		"salary":      job.Salary,
		"address":     job.Address,
		"location":    job.Location,
		"geo_point":   job.GeoPoint,
		"active":      job.Active,
		"expires_at":  job.ExpiresAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrJobNotFound
	}
	return job, nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// FindWithinRadius runs a spherical containment query against the 2dsphere
// index: center is [lng lat], radiusRad is the angular radius in radians.
func (r *JobRepository) FindWithinRadius(ctx context.Context, lng, lat, radiusRad float64) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"geo_point": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{lng, lat}, radiusRad},
			},
		},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("radius query: %w", err)
	}
	return decodeJobs(ctx, cursor)
}

// TopicStats computes count/avg/min/max salary over jobs whose topic matches
// case-insensitively, in a single server-side aggregation.
func (r *JobRepository) TopicStats(ctx context.Context, topic string) (*domain.TopicStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"topic": bson.M{"$regex": "^" + regexp.QuoteMeta(topic) + "$", "$options": "i"},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"count":      bson.M{"$sum": 1},
			"avg_salary": bson.M{"$avg": "$salary"},
			"min_salary": bson.M{"$min": "$salary"},
			"max_salary": bson.M{"$max": "$salary"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("topic stats: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Count     int64   `bson:"count"`
		AvgSalary float64 `bson:"avg_salary"`
		MinSalary float64 `bson:"min_salary"`
		MaxSalary float64 `bson:"max_salary"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("topic stats decode: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrNoMatchingTopic
	}

	return &domain.TopicStats{
		Topic:     topic,
		Count:     rows[0].Count,
		AvgSalary: rows[0].AvgSalary,
		MinSalary: rows[0].MinSalary,
		MaxSalary: rows[0].MaxSalary,
	}, nil
}

// AppendApplication appends in a single conditional update: the filter
// matches the job only while no application from this user exists, so the
// check and the insert cannot interleave with a concurrent apply.
func (r *JobRepository) AppendApplication(ctx context.Context, jobID string, app domain.Application) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return domain.ErrJobNotFound
	}

	filter := bson.M{
		"_id":                  oid,
		"applications.user_id": bson.M{"$ne": app.UserID},
	}
	update := bson.M{"$push": bson.M{"applications": app}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("append application: %w", err)
	}
	if res.MatchedCount == 0 {
		// distinguish "job gone" from "already applied"
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("append application: %w", err)
		}
		if n == 0 {
			return domain.ErrJobNotFound
		}
		return domain.ErrDuplicateApplication
	}
	return nil
}

// EnsureIndexes creates the unique slug index and the 2dsphere index the
// radius search depends on.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "geo_point", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "topic", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeJobs(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Job, error) {
	defer cursor.Close(ctx)

	jobs := []*domain.Job{}
	for cursor.Next(ctx) {
		var mj mongoJob
		if err := cursor.Decode(&mj); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, mj.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

func toMongoJob(j *domain.Job) mongoJob {
	return mongoJob{
		Title:        j.Title,
		Slug:         j.Slug,
		Description:  j.Description,
		Company:      j.Company,
		Topic:        j.Topic,
		Salary:       j.Salary,
		Address:      j.Address,
		Location:     j.Location,
		GeoPoint:     j.GeoPoint,
		OwnerID:      j.OwnerID,
		Active:       j.Active,
		CreatedAt:    j.CreatedAt,
		ExpiresAt:    j.ExpiresAt,
		Applications: j.Applications,
	}
}

func (mj mongoJob) toDomain() *domain.Job {
	apps := mj.Applications
	if apps == nil {
		apps = []domain.Application{}
	}
	return &domain.Job{
		ID:           mj.ID.Hex(),
		Title:        mj.Title,
		Slug:         mj.Slug,
		Description:  mj.Description,
		Company:      mj.Company,
		Topic:        mj.Topic,
		Salary:       mj.Salary,
		Address:      mj.Address,
		Location:     mj.Location,
		GeoPoint:     mj.GeoPoint,
		OwnerID:      mj.OwnerID,
		Active:       mj.Active,
		CreatedAt:    mj.CreatedAt,
		ExpiresAt:    mj.ExpiresAt,
		Applications: apps,
	}
}
