package web

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	domproduct "example.com/catalog-admin/app/internal/domain/product"
	domuser "example.com/catalog-admin/app/internal/domain/user"
	productuc "example.com/catalog-admin/app/internal/usecase/product"
)

const maxUploadSize = 10 << 20

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	products, err := s.productSvc.List(r.Context(), domproduct.ListFilter{Page: page})
	if err != nil {
		s.domainError(w, err)
		return
	}
	total, err := s.productSvc.Count(r.Context())
	if err != nil {
		s.domainError(w, err)
		return
	}

	u := currentUser(r.Context())
	s.render(w, http.StatusOK, "products_index", listView{
		User:      u,
		CanManage: u.Can(domuser.ActionManageProducts),
		Notice:    s.popNotice(w, r),
		Products:  products,
		Page:      page,
		HasPrev:   page > 1,
		HasNext:   int64(page)*domproduct.DefaultPageSize < total,
		PrevPage:  page - 1,
		NextPage:  page + 1,
	})
}

func (s *Server) handleShowProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	p, err := s.productSvc.GetByID(r.Context(), id)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.render(w, http.StatusOK, "products_show", showView{
		User:    currentUser(r.Context()),
		Product: p,
	})
}

func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	view := formView{
		User:   currentUser(r.Context()),
		Title:  "Add new product",
		Action: "/products",
		Values: map[string]string{},
		Errors: map[string]string{},
	}
	if st := s.popFormState(w, r); st != nil {
		view.Values = st.Values
		view.Errors = st.Errors
	}
	s.render(w, http.StatusOK, "products_form", view)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	form, photo, err := s.parseProductSubmission(r)
	if err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	price, fieldErrs := s.validateProductForm(form)
	if len(fieldErrs) > 0 {
		s.flashFormState(w, r, formState{
			Values: map[string]string{"name": form.Name, "price": form.Price},
			Errors: fieldErrs,
		})
		http.Redirect(w, r, "/products/create", http.StatusFound)
		return
	}

	p, err := s.productSvc.Create(r.Context(), productuc.CreateInput{
		Name:  form.Name,
		Price: price,
		Photo: photo,
	})
	if err != nil {
		s.domainError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/products/%d", p.ID), http.StatusFound)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	p, err := s.productSvc.GetByID(r.Context(), id)
	if err != nil {
		s.domainError(w, err)
		return
	}

	view := formView{
		User:   currentUser(r.Context()),
		Title:  "Edit product",
		Action: fmt.Sprintf("/products/%d", p.ID),
		Method: http.MethodPut,
		Values: map[string]string{
			"name":  p.Name,
			"price": formatPrice(p.Price),
		},
		Errors: map[string]string{},
	}
	if st := s.popFormState(w, r); st != nil {
		view.Values = st.Values
		view.Errors = st.Errors
	}
	s.render(w, http.StatusOK, "products_form", view)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	form, photo, err := s.parseProductSubmission(r)
	if err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	price, fieldErrs := s.validateProductForm(form)
	if len(fieldErrs) > 0 {
		s.flashFormState(w, r, formState{
			Values: map[string]string{"name": form.Name, "price": form.Price},
			Errors: fieldErrs,
		})
		http.Redirect(w, r, fmt.Sprintf("/products/%d/edit", id), http.StatusFound)
		return
	}

	if _, err := s.productSvc.Update(r.Context(), productuc.UpdateInput{
		ID:    id,
		Name:  form.Name,
		Price: price,
		Photo: photo,
	}); err != nil {
		s.domainError(w, err)
		return
	}

	s.flashNotice(w, r, "Product updated.")
	http.Redirect(w, r, "/products", http.StatusFound)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	if err := s.productSvc.Delete(r.Context(), id); err != nil {
		s.domainError(w, err)
		return
	}

	s.flashNotice(w, r, "Product deleted.")
	http.Redirect(w, r, "/products", http.StatusFound)
}

// parseProductSubmission reads the name/price fields and the optional photo
// from either a multipart or urlencoded body.
func (s *Server) parseProductSubmission(r *http.Request) (productForm, *productuc.Upload, error) {
	var photo *productuc.Upload

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return productForm{}, nil, err
		}
		if file, header, err := r.FormFile("photo"); err == nil && header.Filename != "" {
			photo = &productuc.Upload{
				Filename: filepath.Base(header.Filename),
				Content:  file,
			}
		}
	} else if err := r.ParseForm(); err != nil {
		return productForm{}, nil, err
	}

	form := productForm{
		Name:  strings.TrimSpace(r.PostFormValue("name")),
		Price: strings.TrimSpace(r.PostFormValue("price")),
	}
	return form, photo, nil
}
