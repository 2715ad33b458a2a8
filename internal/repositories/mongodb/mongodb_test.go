package mongodb_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockT(t *testing.T) *mtest.T {
	t.Helper()

	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

// toDoc round trips v through BSON so it can be served by the mock deployment.
func toDoc(t *testing.T, v any) bson.D {
	t.Helper()

	raw, err := bson.Marshal(v)
	require.NoError(t, err)

	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))

	return doc
}

func updateAck() bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1})
}

func commandFailure() bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 8000, Name: "AtlasError", Message: "boom"})
}
