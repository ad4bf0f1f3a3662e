package docstore

import (
	"github.com/pkg/errors"
)

func errMissingID(kind string) error {
	return errors.Errorf("update %s: missing id", kind)
}
