package handler

import (
	"net/http"

	"github.com/BuzzLyutic/todo-api/internal/tags"
	"github.com/BuzzLyutic/todo-api/pkg/respond"
)

// Tags serves the static catalog grouped for the tag selector.
func Tags(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, tags.Grouped())
}
