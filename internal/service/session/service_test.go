package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookstore-storefront/internal/domain"
	sessionrepo "bookstore-storefront/internal/repository/session"
	"github.com/google/uuid"
)

func TestIssueAndLookup(t *testing.T) {
	svc := New(sessionrepo.NewMemory(), time.Hour)
	ctx := context.Background()

	sess, err := svc.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := uuid.Parse(sess.ShopperID); err != nil {
		t.Fatalf("shopper id is not a uuid: %q", sess.ShopperID)
	}
	if sess.Token == "" || sess.ExpiresIn != 3600 {
		t.Fatalf("unexpected session %+v", sess)
	}

	got, err := svc.LookupByToken(ctx, sess.Token)
	if err != nil || got != sess.ShopperID {
		t.Fatalf("LookupByToken: %q %v", got, err)
	}

	other, _ := svc.Issue(ctx)
	if other.ShopperID == sess.ShopperID || other.Token == sess.Token {
		t.Fatalf("sessions must be distinct")
	}
}

func TestLookupRejectsUnknownAndBlank(t *testing.T) {
	svc := New(sessionrepo.NewMemory(), 0)
	for _, tok := range []string{"", "  ", "nope"} {
		if _, err := svc.LookupByToken(context.Background(), tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
	if svc.TTLSeconds() != 30*24*3600 {
		t.Fatalf("unexpected default ttl %d", svc.TTLSeconds())
	}
}

func TestExpiredTokenIsDeleted(t *testing.T) {
	repo := sessionrepo.NewMemory()
	svc := New(repo, time.Minute)
	ctx := context.Background()
	sess, _ := svc.Issue(ctx)

	svc.tokens.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := svc.LookupByToken(ctx, sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
	if _, err := repo.Get(ctx, sess.Token); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expired token to be deleted, got %v", err)
	}
}

type collidingRepo struct {
	*sessionrepo.Memory
	collisions int
}

func (c *collidingRepo) Create(ctx context.Context, tok sessionrepo.Token) error {
	if c.collisions > 0 {
		c.collisions--
		return domain.ErrAlreadyExists
	}
	return c.Memory.Create(ctx, tok)
}

func TestIssueRetriesOnCollision(t *testing.T) {
	svc := New(&collidingRepo{Memory: sessionrepo.NewMemory(), collisions: 2}, time.Hour)
	if _, err := svc.Issue(context.Background()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}

	svc = New(&collidingRepo{Memory: sessionrepo.NewMemory(), collisions: 10}, time.Hour)
	if _, err := svc.Issue(context.Background()); err == nil {
		t.Fatalf("expected persistent collisions to fail")
	}
}

type unavailableRepo struct {
	*sessionrepo.Memory
}

func (unavailableRepo) Get(context.Context, string) (*sessionrepo.Token, error) {
	return nil, errors.New("connection refused")
}

func TestLookupSurfacesStorageFailures(t *testing.T) {
	svc := New(unavailableRepo{Memory: sessionrepo.NewMemory()}, time.Hour)
	_, err := svc.LookupByToken(context.Background(), "some-token")
	if err == nil || errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected storage error distinct from ErrInvalidToken, got %v", err)
	}
}
