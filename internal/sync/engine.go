// Package sync reconciles one user's documents between the local store and
// the shared remote store. Conflict policy is last-writer-wins at document
// granularity: whichever side carries the later document timestamp wins
// wholesale, children included. This is a deliberate simplification; a pull
// snapshots the local aggregate before overwriting it so a clobbered edit is
// recoverable.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/draftloom/manuscript/internal/cache"
	"github.com/draftloom/manuscript/internal/compress"
	"github.com/draftloom/manuscript/internal/model"
	"github.com/draftloom/manuscript/internal/queue"
	"github.com/draftloom/manuscript/internal/store"
)

// Summary is the result of one FullSync pass.
type Summary struct {
	Uploaded   int
	Downloaded int
	Success    bool
	Err        error
}

// Engine orchestrates pull and push. Both are independently idempotent;
// retries are driven by the caller, never by a background loop.
type Engine struct {
	local   store.LocalStore
	remote  store.RemoteStore
	queue   *queue.Queue
	status  *cache.StatusCache // optional, nil disables
	encoder compress.Compress
	now     func() time.Time
}

func NewEngine(local store.LocalStore, remote store.RemoteStore, q *queue.Queue, status *cache.StatusCache) *Engine {
	return &Engine{
		local:   local,
		remote:  remote,
		queue:   q,
		status:  status,
		encoder: compress.NewGZip(),
		now:     time.Now,
	}
}

// Pull fetches the user's remote documents and adopts every aggregate whose
// remote timestamp is strictly newer than the local copy (or absent
// locally). The local copy wins ties. Any remote error is fatal to the pull:
// pushing on top of possibly-stale state risks clobbering newer remote data.
func (e *Engine) Pull(ctx context.Context, userID string) (int, error) {
	remoteDocs, err := e.remote.SelectDocuments(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("pulling documents: %w", err)
	}

	downloaded := 0
	for _, remoteDoc := range remoteDocs {
		docID, err := uuid.Parse(remoteDoc.ID)
		if err != nil {
			return downloaded, fmt.Errorf("remote document id %q: %w", remoteDoc.ID, err)
		}

		local, err := e.local.GetDocument(ctx, docID)
		switch {
		case err == nil:
			if !remoteDoc.UpdatedAt.After(local.UpdatedAt) {
				continue
			}
			// Local edits lose wholesale here; keep a recovery copy.
			if err := e.snapshot(ctx, local, "pre-pull overwrite"); err != nil {
				logrus.Warnf("snapshot before overwrite of %s failed: %v", local.ID, err)
			}
		case errors.Is(err, store.ErrNotFound):
			// adopt
		default:
			return downloaded, fmt.Errorf("reading local document %s: %w", remoteDoc.ID, err)
		}

		if err := e.adopt(ctx, remoteDoc); err != nil {
			return downloaded, err
		}
		downloaded++

		if err := e.status.SetRemoteVersion(ctx, remoteDoc.ID, remoteDoc.UpdatedAt); err != nil {
			logrus.Warnf("recording remote version of %s: %v", remoteDoc.ID, err)
		}
	}

	return downloaded, nil
}

// adopt overwrites the local aggregate wholesale with the remote one.
func (e *Engine) adopt(ctx context.Context, doc *model.Document) error {
	units, err := e.remote.SelectUnits(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("pulling units of %s: %w", doc.ID, err)
	}
	annotations, err := e.remote.SelectAnnotations(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("pulling annotations of %s: %w", doc.ID, err)
	}

	logrus.Infof("adopting remote document %s (%d units, %d annotations)", doc.ID, len(units), len(annotations))

	docID := uuid.MustParse(doc.ID)
	return e.local.Transaction(ctx, func(tx store.LocalStore) error {
		if err := tx.PutDocument(ctx, doc); err != nil {
			return err
		}
		if err := tx.DeleteUnitsByDocument(ctx, docID); err != nil {
			return err
		}
		for _, unit := range units {
			if err := tx.PutUnit(ctx, unit); err != nil {
				return err
			}
		}
		if err := tx.DeleteAnnotationsByDocument(ctx, docID); err != nil {
			return err
		}
		for _, a := range annotations {
			if err := tx.PutAnnotation(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
}

// snapshot stores a compressed copy of the local aggregate before it is
// overwritten.
func (e *Engine) snapshot(ctx context.Context, doc *model.Document, reason string) error {
	docID := uuid.MustParse(doc.ID)
	units, err := e.local.ListUnits(ctx, docID)
	if err != nil {
		return err
	}
	annotations, err := e.local.ListAnnotations(ctx, docID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(model.DocumentArchive{Document: doc, Units: units, Annotations: annotations})
	if err != nil {
		return err
	}
	payload, err := e.encoder.Encode(data)
	if err != nil {
		return err
	}

	return e.local.CreateSnapshot(ctx, &model.DocumentSnapshot{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Payload:    payload,
		Reason:     reason,
		CreatedAt:  e.now(),
	})
}

// Push upserts every local document of the user, then each of its units and
// annotations. A failure on one record is logged and skipped; siblings and
// other documents continue (best effort). Returns the count of successful
// upserts and the IDs of records that failed.
func (e *Engine) Push(ctx context.Context, userID string) (int, map[string]bool, error) {
	docs, err := e.local.ListDocuments(ctx, userID)
	if err != nil {
		return 0, nil, fmt.Errorf("listing local documents: %w", err)
	}

	uploaded := 0
	failed := make(map[string]bool)

	for _, doc := range docs {
		docID := uuid.MustParse(doc.ID)
		if err := e.remote.UpsertDocument(ctx, doc); err != nil {
			logrus.Errorf("pushing document %s: %v", doc.ID, err)
			failed[doc.ID] = true
			// The children were never attempted, so their queued operations
			// are just as unconfirmed as the document's own.
			if err := e.failChildren(ctx, docID, failed); err != nil {
				return uploaded, failed, err
			}
			continue
		}
		uploaded++

		units, err := e.local.ListUnits(ctx, docID)
		if err != nil {
			return uploaded, failed, fmt.Errorf("listing units of %s: %w", doc.ID, err)
		}
		for _, unit := range units {
			if err := e.remote.UpsertUnit(ctx, unit); err != nil {
				logrus.Errorf("pushing unit %s: %v", unit.ID, err)
				failed[unit.ID] = true
				continue
			}
			uploaded++
		}

		annotations, err := e.local.ListAnnotations(ctx, docID)
		if err != nil {
			return uploaded, failed, fmt.Errorf("listing annotations of %s: %w", doc.ID, err)
		}
		for _, a := range annotations {
			if err := e.remote.UpsertAnnotation(ctx, a); err != nil {
				logrus.Errorf("pushing annotation %s: %v", a.ID, err)
				failed[a.ID] = true
				continue
			}
			uploaded++
		}
	}

	return uploaded, failed, nil
}

// failChildren marks every child record of a document as failed so their
// queued operations survive the confirmation sweep.
func (e *Engine) failChildren(ctx context.Context, docID uuid.UUID, failed map[string]bool) error {
	units, err := e.local.ListUnits(ctx, docID)
	if err != nil {
		return fmt.Errorf("listing units of %s: %w", docID, err)
	}
	for _, unit := range units {
		failed[unit.ID] = true
	}

	annotations, err := e.local.ListAnnotations(ctx, docID)
	if err != nil {
		return fmt.Errorf("listing annotations of %s: %w", docID, err)
	}
	for _, a := range annotations {
		failed[a.ID] = true
	}
	return nil
}

// FullSync performs pull-then-push and clears the confirmed part of the
// operation queue. A pull failure aborts early with local state untouched;
// push failures are per-record and leave their operations queued for the
// next attempt.
func (e *Engine) FullSync(ctx context.Context, userID string) Summary {
	pending, err := e.queue.List(ctx)
	if err != nil {
		return e.finish(ctx, userID, Summary{Err: fmt.Errorf("reading queue: %w", err)})
	}

	downloaded, err := e.Pull(ctx, userID)
	if err != nil {
		return e.finish(ctx, userID, Summary{Downloaded: downloaded, Err: err})
	}

	uploaded, failed, err := e.Push(ctx, userID)
	if err != nil {
		return e.finish(ctx, userID, Summary{Downloaded: downloaded, Uploaded: uploaded, Err: err})
	}

	// Operations enqueued before this pass whose target upserted cleanly are
	// confirmed; the rest stay queued for the next explicit sync.
	var confirmed []string
	for _, op := range pending {
		if !failed[op.TargetID] {
			confirmed = append(confirmed, op.ID)
		}
	}
	if err := e.queue.Clear(ctx, confirmed); err != nil {
		return e.finish(ctx, userID, Summary{Downloaded: downloaded, Uploaded: uploaded, Err: fmt.Errorf("clearing queue: %w", err)})
	}

	return e.finish(ctx, userID, Summary{
		Downloaded: downloaded,
		Uploaded:   uploaded,
		Success:    len(failed) == 0,
	})
}

func (e *Engine) finish(ctx context.Context, userID string, s Summary) Summary {
	if s.Err != nil {
		s.Success = false
		logrus.Errorf("sync for %s failed: %v", userID, s.Err)
	} else {
		logrus.Infof("sync for %s: uploaded %d, downloaded %d, success %v", userID, s.Uploaded, s.Downloaded, s.Success)
	}

	rec := cache.SyncRecord{
		Uploaded:   s.Uploaded,
		Downloaded: s.Downloaded,
		Success:    s.Success,
		FinishedAt: e.now(),
	}
	if s.Err != nil {
		rec.Error = s.Err.Error()
	}
	if err := e.status.RecordSummary(ctx, userID, rec); err != nil {
		logrus.Warnf("recording sync summary: %v", err)
	}

	return s
}
