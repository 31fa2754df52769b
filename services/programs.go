package services

import (
	"context"
	"errors"
	"strings"

	"kovan/messaging"
	"kovan/models"
	"kovan/storage"
	"kovan/store"
	"kovan/validation"
)

type ProgramService struct {
	deps     Deps
	programs *store.Collection
}

func NewProgramService(d Deps) *ProgramService {
	d = d.withDefaults()
	return &ProgramService{deps: d, programs: d.collection(ProgramsCollection)}
}

func (s *ProgramService) applications(programID string) *store.Collection {
	return s.programs.Sub(programID, ApplicationsCollection)
}

// List returns the programs of category, newest first. "" and "all" list
// every program.
func (s *ProgramService) List(ctx context.Context, category string) ([]models.Program, error) {
	q := store.Query{OrderBy: "createdAt", Direction: store.Desc}
	if category = strings.TrimSpace(category); category != "" && category != "all" {
		q.Where = []store.Filter{store.Where("category", store.OpEqual, category)}
	}
	docs, err := s.programs.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Program](docs)
}

func (s *ProgramService) Get(ctx context.Context, id string) (*models.Program, error) {
	var p models.Program
	if err := s.programs.Get(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ApplyInput is the application form.
type ApplyInput struct {
	ConsentAccepted bool   `json:"consentAccepted"`
	Motivation      string `json:"motivation"`
}

// Apply files userID's application to a program. The data processing
// consent must be accepted; a user applies at most once per program.
func (s *ProgramService) Apply(ctx context.Context, userID, programID string, in ApplyInput) (*models.Application, error) {
	if !in.ConsentAccepted {
		return nil, validation.Errors{"consent": "Başvuru için KVKK aydınlatma metnini onaylamalısınız"}
	}
	app := models.Application{
		UserID:          userID,
		ProgramID:       programID,
		ConsentAccepted: true,
		Motivation:      strings.TrimSpace(in.Motivation),
		Status:          "pending",
	}
	err := s.deps.Store.RunInTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		programs := s.programs.In(tx)
		apps := s.applications(programID).In(tx)

		var program models.Program
		if err := programs.Get(ctx, programID, &program); err != nil {
			return err
		}
		if _, err := apps.Document(ctx, userID); err == nil {
			return ErrConflict
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		app.ProgramTitle = program.Title
		doc, err := apps.Set(ctx, userID, app)
		if err != nil {
			return err
		}
		if err := store.Decode(doc, &app); err != nil {
			return err
		}
		return programs.IncrementField(ctx, programID, "stats.applicants", 1)
	})
	if err != nil {
		return nil, err
	}
	s.deps.publish(messaging.ApplicationCreated, map[string]string{"programId": programID, "userId": userID})
	return &app, nil
}

// MyApplications lists userID's applications across every program.
func (s *ProgramService) MyApplications(ctx context.Context, userID string) ([]models.Application, error) {
	programs, err := s.programs.Find(ctx, store.Query{})
	if err != nil {
		return nil, err
	}
	apps := []models.Application{}
	for _, p := range programs {
		var app models.Application
		err := s.applications(p.ID()).Get(ctx, userID, &app)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// UploadImage replaces a program's image. Only its coordinator may.
func (s *ProgramService) UploadImage(ctx context.Context, userID, programID string, f Upload) (string, error) {
	program, err := s.Get(ctx, programID)
	if err != nil {
		return "", err
	}
	if program.Coordinator.UserID != userID {
		return "", ErrForbidden
	}
	if err := validation.ValidateImage(f.ContentType, f.Size); err != nil {
		return "", err
	}
	url, err := s.deps.Blob.Upload(ctx, storage.ProgramImagePath(programID, f.Name), f.Body)
	if err != nil {
		return "", err
	}
	if err := s.programs.Update(ctx, programID, map[string]interface{}{"image": url}); err != nil {
		return "", err
	}
	return url, nil
}
