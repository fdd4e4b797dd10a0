package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinateKey(t *testing.T) {
	assert.Equal(t, "coords:30.2672,-97.7431", CoordinateKey(30.2672, -97.7431))
	assert.Equal(t, "coords:30.2672,-97.7431", CoordinateKey(30.26721, -97.74312))
	assert.Equal(t, "coords:0,0", CoordinateKey(-0.00001, 0.00001))
	assert.Equal(t, "coords:45.5,-122", CoordinateKey(45.5, -122))
}

func TestQueryKey(t *testing.T) {
	assert.Equal(t, "query:austin, tx", QueryKey("  Austin, TX "))
	assert.Equal(t, QueryKey("LONDON"), QueryKey("london"))
	assert.NotEqual(t, QueryKey("10001"), CoordinateKey(10001, 0))
}
