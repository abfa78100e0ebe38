package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/identity"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
	"github.com/brahmiamine/ArbiNote-sub000/pkg/metrics"
)

// Collection names.
const (
	votesCollection     = "votes"
	matchesCollection   = "matches"
	officialsCollection = "officials"
)

// MongoStore is the Mongo-backed Store implementation. The one-vote
// invariant lives in a unique compound index on {match_id, fingerprint}: the
// insert itself fails on a duplicate, closing the check-then-insert race at
// the database.
type MongoStore struct {
	client    *mongo.Client
	votes     *mongo.Collection
	matches   *mongo.Collection
	officials *mongo.Collection
}

// voteDoc mirrors model.Vote in the votes collection.
type voteDoc struct {
	ID          string             `bson:"_id"`
	MatchID     string             `bson:"match_id"`
	OfficialID  string             `bson:"official_id"`
	Fingerprint string             `bson:"fingerprint"`
	Scores      map[string]float64 `bson:"scores"`
	GlobalNote  float64            `bson:"global_note"`
	CreatedAt   time.Time          `bson:"created_at"`
}

type matchDoc struct {
	ID         string     `bson:"_id"`
	HomeTeam   string     `bson:"home_team"`
	AwayTeam   string     `bson:"away_team"`
	Kickoff    *time.Time `bson:"kickoff,omitempty"`
	OfficialID string     `bson:"official_id,omitempty"`
	MatchdayID string     `bson:"matchday_id"`
}

type officialDoc struct {
	ID        string `bson:"_id"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	Role      string `bson:"role,omitempty"`
}

// NewMongoStore connects to Mongo and ensures the uniqueness index exists.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	db := client.Database(database)

	s := &MongoStore{
		client:    client,
		votes:     db.Collection(votesCollection),
		matches:   db.Collection(matchesCollection),
		officials: db.Collection(officialsCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// ensureIndexes creates the unique (match_id, fingerprint) index backing the
// one-vote-per-device-per-match invariant.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.votes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "match_id", Value: 1}, {Key: "fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("one_vote_per_device_per_match"),
		},
		{Keys: bson.D{{Key: "official_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create vote indexes: %w", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}

func (s *MongoStore) InsertVote(ctx context.Context, v model.Vote) (model.Vote, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreInsertLatency(float64(time.Since(start).Milliseconds()))
	}()

	doc := voteDoc{
		ID:          v.ID,
		MatchID:     v.MatchID,
		OfficialID:  v.OfficialID,
		Fingerprint: identity.Normalize(v.Fingerprint),
		Scores:      v.Scores,
		GlobalNote:  v.GlobalNote,
		CreatedAt:   v.CreatedAt,
	}
	if _, err := s.votes.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Vote{}, ErrDuplicateVote
		}
		return model.Vote{}, fmt.Errorf("insert vote: %w", err)
	}
	return v, nil
}

func (s *MongoStore) listVotes(ctx context.Context, filter interface{}) ([]model.Vote, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	cur, err := s.votes.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer cur.Close(ctx)

	var out []model.Vote
	for cur.Next(ctx) {
		var d voteDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode vote: %w", err)
		}
		out = append(out, model.Vote{
			ID:          d.ID,
			MatchID:     d.MatchID,
			OfficialID:  d.OfficialID,
			Fingerprint: d.Fingerprint,
			Scores:      d.Scores,
			GlobalNote:  d.GlobalNote,
			CreatedAt:   d.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate votes: %w", err)
	}
	return out, nil
}

func (s *MongoStore) ListVotes(ctx context.Context) ([]model.Vote, error) {
	return s.listVotes(ctx, bson.D{})
}

func (s *MongoStore) ListVotesForMatches(ctx context.Context, matchIDs []string) ([]model.Vote, error) {
	if len(matchIDs) == 0 {
		return nil, nil
	}
	return s.listVotes(ctx, bson.M{"match_id": bson.M{"$in": matchIDs}})
}

func (s *MongoStore) ListVotesForOfficial(ctx context.Context, officialID string) ([]model.Vote, error) {
	return s.listVotes(ctx, bson.M{"official_id": officialID})
}

func (s *MongoStore) HasVote(ctx context.Context, matchID, fingerprint string) (bool, error) {
	err := s.votes.FindOne(ctx, bson.M{
		"match_id":    matchID,
		"fingerprint": identity.Normalize(fingerprint),
	}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup vote: %w", err)
	}
	return true, nil
}

func (s *MongoStore) FindMatch(ctx context.Context, id string) (model.Match, error) {
	var d matchDoc
	err := s.matches.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Match{}, ErrNotFound
	}
	if err != nil {
		return model.Match{}, fmt.Errorf("find match: %w", err)
	}
	return model.Match(d), nil
}

func (s *MongoStore) FindOfficial(ctx context.Context, id string) (model.Official, error) {
	var d officialDoc
	err := s.officials.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Official{}, ErrNotFound
	}
	if err != nil {
		return model.Official{}, fmt.Errorf("find official: %w", err)
	}
	return model.Official(d), nil
}

func (s *MongoStore) ListMatches(ctx context.Context) ([]model.Match, error) {
	cur, err := s.matches.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer cur.Close(ctx)

	var out []model.Match
	for cur.Next(ctx) {
		var d matchDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode match: %w", err)
		}
		out = append(out, model.Match(d))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return out, nil
}

func (s *MongoStore) ListOfficials(ctx context.Context) ([]model.Official, error) {
	cur, err := s.officials.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list officials: %w", err)
	}
	defer cur.Close(ctx)

	var out []model.Official
	for cur.Next(ctx) {
		var d officialDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode official: %w", err)
		}
		out = append(out, model.Official(d))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate officials: %w", err)
	}
	return out, nil
}

func (s *MongoStore) PutMatch(ctx context.Context, m model.Match) error {
	_, err := s.matches.ReplaceOne(ctx, bson.M{"_id": m.ID}, matchDoc(m), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}
	return nil
}

func (s *MongoStore) PutOfficial(ctx context.Context, o model.Official) error {
	_, err := s.officials.ReplaceOne(ctx, bson.M{"_id": o.ID}, officialDoc(o), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert official: %w", err)
	}
	return nil
}

func (s *MongoStore) CountVotes(ctx context.Context) int {
	n, err := s.votes.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0
	}
	return int(n)
}
