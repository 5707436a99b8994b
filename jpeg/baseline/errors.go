package baseline

import (
	"fmt"

	"github.com/go-baseline-jpeg/jfifdecode/jpeg/common"
)

func wrapTableMissing(kind string, id int, componentID byte) error {
	return fmt.Errorf("jpeg: component %d references %s table %d: %w", componentID, kind, id, common.ErrTableMissing)
}

func wrapUnsupported(format string, args ...interface{}) error {
	return fmt.Errorf("jpeg: %s: %w", fmt.Sprintf(format, args...), common.ErrUnsupported)
}

func wrapUnexpectedMarker(format string, args ...interface{}) error {
	return fmt.Errorf("jpeg: %s: %w", fmt.Sprintf(format, args...), common.ErrUnexpectedMarker)
}

func wrapTruncated(format string, args ...interface{}) error {
	return fmt.Errorf("jpeg: %s: %w", fmt.Sprintf(format, args...), common.ErrTruncatedInput)
}

func wrapInvalidRunLength(pos int) error {
	return fmt.Errorf("jpeg: AC run advanced to position %d: %w", pos, common.ErrInvalidRunLength)
}
