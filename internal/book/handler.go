package book

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"librarycatalog/internal/apperror"
	"librarycatalog/internal/auth"
	"librarycatalog/internal/handlers"
	"librarycatalog/internal/templates"
	"librarycatalog/package/logger"
)

const (
	IndexUrl      = "/index"
	AddBookUrl    = "/add_book"
	BookDetailUrl = "/books/:id"
	DeleteBookUrl = "/delete_book"
)

type handler struct {
	storage *Storage
	auth    *auth.Service
}

func NewHandler(storage *Storage, authService *auth.Service) handlers.Handler {
	return &handler{storage: storage, auth: authService}
}

func (h *handler) Register(router *httprouter.Router) {
	router.GET(IndexUrl, auth.Require(h.auth, h.Index))
	router.GET(AddBookUrl, auth.Require(h.auth, h.AddBookForm))
	router.POST(AddBookUrl, auth.Require(h.auth, h.AddBook))
	router.GET(BookDetailUrl, auth.Require(h.auth, h.Detail))
	router.GET(DeleteBookUrl, auth.Require(h.auth, h.DeleteBookForm))
	router.POST(DeleteBookUrl, auth.Require(h.auth, h.DeleteBook))
}

func (h *handler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params, _ string) {
	books, err := h.storage.GetAll(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		logger.Log.Error("Can not list books: " + err.Error())
		return
	}
	templates.Render(w, "index.html", indexContext{Books: books})
}

func (h *handler) AddBookForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params, _ string) {
	templates.Render(w, "add_book.html", nil)
}

func (h *handler) AddBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params, _ string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
		logger.Log.Info("Bad add-book request: " + err.Error())
		return
	}
	title := r.PostFormValue("title")
	author := r.PostFormValue("author")
	description := r.PostFormValue("description")
	if title == "" || author == "" {
		http.Error(w, "Bad request: title and author are required", http.StatusBadRequest)
		logger.Log.Info("Bad add-book request: missing title or author")
		return
	}
	numPages, err := strconv.Atoi(r.PostFormValue("num_pages"))
	if err != nil {
		err = fmt.Errorf("%w: num_pages must be an integer", apperror.ErrValidation)
		http.Error(w, "Bad request: num_pages must be an integer", apperror.Status(err))
		logger.Log.Info("Bad add-book request: " + err.Error())
		return
	}

	record := &Book{Title: title, Author: author, Description: description, NumPages: numPages}
	if _, err = h.storage.Add(r.Context(), record); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		logger.Log.Error("Can not add book: " + err.Error())
		return
	}

	logger.Log.Info("Added book " + title)
	http.Redirect(w, r, IndexUrl, http.StatusSeeOther)
}

// Detail shows one book. Storage failures here map to a generic server
// error rather than leaking the cause.
func (h *handler) Detail(w http.ResponseWriter, r *http.Request, params httprouter.Params, _ string) {
	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		err = fmt.Errorf("%w: book id must be an integer", apperror.ErrValidation)
		http.Error(w, "Bad request: book id must be an integer", apperror.Status(err))
		logger.Log.Info("Bad book request: " + err.Error())
		return
	}

	record, err := h.storage.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		logger.Log.Error("Can not fetch book: " + err.Error())
		return
	}
	if record == nil {
		http.Error(w, "Book not found", http.StatusNotFound)
		logger.Log.Info("Book " + params.ByName("id") + " not found")
		return
	}
	templates.Render(w, "book_detail.html", detailContext{Book: *record})
}

func (h *handler) DeleteBookForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params, _ string) {
	templates.Render(w, "delete_book.html", nil)
}

func (h *handler) DeleteBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params, _ string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
		logger.Log.Info("Bad delete-book request: " + err.Error())
		return
	}
	method := r.PostFormValue("method")
	if method == "" {
		method = "delete"
	}

	if strings.ToLower(method) == "delete" {
		title := r.PostFormValue("title")
		record, err := h.storage.GetByTitle(r.Context(), title)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			logger.Log.Error("Can not fetch book: " + err.Error())
			return
		}
		if record == nil {
			http.Error(w, "Book not found", http.StatusNotFound)
			logger.Log.Info("Book " + title + " not found")
			return
		}
		if _, err = h.storage.RemoveByID(r.Context(), record.ID); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			logger.Log.Error("Can not delete book: " + err.Error())
			return
		}
		logger.Log.Info("Deleted book " + title)
	}

	http.Redirect(w, r, IndexUrl, http.StatusSeeOther)
}

type indexContext struct {
	Books []Book
}

type detailContext struct {
	Book Book
}
