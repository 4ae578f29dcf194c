package product

import (
	"context"
	"io"
	"path"

	domproduct "example.com/catalog-admin/app/internal/domain/product"
)

// FileStore persists uploaded files under a relative name. Saving an
// existing name overwrites the previous content.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Remove(ctx context.Context, name string) error
}

// Upload is an incoming file attached to a create or update submission.
type Upload struct {
	Filename string
	Content  io.Reader
}

// uploadNamespace is the directory images live under inside the file store.
const uploadNamespace = "products"

type Service struct {
	repo  domproduct.Repository
	files FileStore
}

func NewService(repo domproduct.Repository, files FileStore) *Service {
	return &Service{repo: repo, files: files}
}

type CreateInput struct {
	Name  string
	Price float64
	Photo *Upload
}

// Create stores the photo (when present) and persists the product. If the
// insert fails after the file was written, the file is removed best-effort.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domproduct.Product, error) {
	p := &domproduct.Product{
		Name:  in.Name,
		Price: in.Price,
	}

	if in.Photo != nil {
		if err := s.files.Save(ctx, path.Join(uploadNamespace, in.Photo.Filename), in.Photo.Content); err != nil {
			return nil, err
		}
		p.Photo = in.Photo.Filename
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		if in.Photo != nil {
			_ = s.files.Remove(ctx, path.Join(uploadNamespace, in.Photo.Filename))
		}
		return nil, err
	}
	return created, nil
}

type UpdateInput struct {
	ID    int64
	Name  string
	Price float64
	Photo *Upload
}

// Update replaces name and price of the existing record, keeping its id.
// A newly uploaded photo replaces the recorded filename; otherwise the
// photo field is left as it was.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*domproduct.Product, error) {
	existed, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	existed.Name = in.Name
	existed.Price = in.Price

	if in.Photo != nil {
		if err := s.files.Save(ctx, path.Join(uploadNamespace, in.Photo.Filename), in.Photo.Content); err != nil {
			return nil, err
		}
		existed.Photo = in.Photo.Filename
	}

	return s.repo.Update(ctx, existed)
}

// Delete removes the record and its stored image, if any. The image removal
// is best-effort; the record is gone either way.
func (s *Service) Delete(ctx context.Context, id int64) error {
	existed, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if existed.Photo != "" {
		_ = s.files.Remove(ctx, path.Join(uploadNamespace, existed.Photo))
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns one page of products in insertion order. Page numbers start
// at 1; out-of-range values fall back to the first page and the default
// page size.
func (s *Service) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = domproduct.DefaultPageSize
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
