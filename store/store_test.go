// SPDX-License-Identifier: MIT

package store_test

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decaychain/store"
)

// fakeS3 is an in-memory S3API serving pages of two keys.
type fakeS3 struct {
	mu   sync.Mutex
	objs map[string]fakeObject
}

type fakeObject struct {
	body        []byte
	contentType string
	metadata    map[string]string
	modified    time.Time
}

func newFakeS3() *fakeS3 { return &fakeS3{objs: make(map[string]fakeObject)} }

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objs[aws.ToString(in.Key)] = fakeObject{body: b, contentType: aws.ToString(in.ContentType), metadata: in.Metadata, modified: time.Now().UTC()}

	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.objs[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}

	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(o.body)),
		ContentLength: aws.Int64(int64(len(o.body))),
		ContentType:   aws.String(o.contentType),
		ETag:          aws.String(`"etag"`),
		Metadata:      o.metadata,
		LastModified:  aws.Time(o.modified),
	}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.objs[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}

	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(o.body))),
		ContentType:   aws.String(o.contentType),
		ETag:          aws.String(`"etag"`),
		Metadata:      o.metadata,
		LastModified:  aws.Time(o.modified),
	}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objs, aws.ToString(in.Key))

	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.objs {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if in.ContinuationToken != nil {
		start, _ = strconv.Atoi(*in.ContinuationToken)
	}
	end := min(start+2, len(keys))
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k), Size: aws.Int64(int64(len(f.objs[k].body)))})
	}

	return out, nil
}

func backends(t *testing.T) map[string]store.Store {
	t.Helper()
	fs, err := store.NewFS(t.TempDir())
	require.NoError(t, err)
	db, err := store.NewSQL(context.Background(), store.SQLDriverSQLite, filepath.Join(t.TempDir(), "blobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]store.Store{
		"memory": store.NewMemory(),
		"fs":     fs,
		"sqlite": db,
		"s3":     store.NewS3WithClient(newFakeS3(), "bundles"),
	}
}

func TestStore_Conformance(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			info, err := st.Put(ctx, "demo/manifest.json", strings.NewReader(`{"a":1}`),
				store.PutOptions{ContentType: "application/json", Metadata: map[string]string{"version": "1"}})
			require.NoError(t, err)
			assert.Equal(t, "demo/manifest.json", info.Key)
			assert.EqualValues(t, 7, info.Size)

			_, err = st.Put(ctx, "demo/manifest.json", strings.NewReader("x"), store.PutOptions{})
			assert.ErrorIs(t, err, store.ErrExists)

			got, rc, err := st.Get(ctx, "demo/manifest.json")
			require.NoError(t, err)
			body, err := io.ReadAll(rc)
			require.NoError(t, rc.Close())
			require.NoError(t, err)
			assert.Equal(t, `{"a":1}`, string(body))
			assert.Equal(t, "application/json", got.ContentType)
			assert.Equal(t, "1", got.Metadata["version"])

			head, err := st.Head(ctx, "demo/manifest.json")
			require.NoError(t, err)
			assert.EqualValues(t, 7, head.Size)

			for _, k := range []string{"demo/c.json", "demo/cinverse.json", "other/manifest.json"} {
				_, err = st.Put(ctx, k, strings.NewReader("{}"), store.PutOptions{})
				require.NoError(t, err)
			}
			list, err := st.List(ctx, "demo/")
			require.NoError(t, err)
			keys := make([]string, len(list))
			for i, in := range list {
				keys[i] = in.Key
			}
			assert.Equal(t, []string{"demo/c.json", "demo/cinverse.json", "demo/manifest.json"}, keys)

			_, _, err = st.Get(ctx, "demo/missing.json")
			assert.ErrorIs(t, err, store.ErrNotFound)
			_, err = st.Head(ctx, "demo/missing.json")
			assert.ErrorIs(t, err, store.ErrNotFound)

			ok, err := st.Delete(ctx, "demo/c.json")
			require.NoError(t, err)
			assert.True(t, ok)
			ok, err = st.Delete(ctx, "demo/c.json")
			require.NoError(t, err)
			assert.False(t, ok)

			_, err = st.Put(ctx, "../escape", strings.NewReader("x"), store.PutOptions{})
			assert.ErrorIs(t, err, store.ErrInvalidKey)
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	st, err := store.Open(ctx, store.Config{Driver: store.DriverMemory})
	require.NoError(t, err)
	assert.Equal(t, store.DriverMemory, st.Driver())

	st, err = store.Open(ctx, store.Config{FSRoot: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, store.DriverFilesystem, st.Driver())

	st, err = store.Open(ctx, store.Config{Driver: store.DriverSQL, SQLDSN: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.Equal(t, store.DriverSQL, st.Driver())
	require.NoError(t, st.(*store.SQL).Close())

	_, err = store.Open(ctx, store.Config{Driver: store.DriverS3})
	assert.ErrorIs(t, err, store.ErrInvalidConfig)

	_, err = store.Open(ctx, store.Config{Driver: "tape"})
	assert.ErrorIs(t, err, store.ErrUnknownDriver)

	_, err = store.NewSQL(ctx, "oracle", "")
	assert.ErrorIs(t, err, store.ErrInvalidConfig)
}

func TestNewS3_StaticCredentials(t *testing.T) {
	st, err := store.NewS3(context.Background(), store.S3Config{
		Bucket:          "bundles",
		Endpoint:        "http://127.0.0.1:9000",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
	})
	require.NoError(t, err)
	assert.Equal(t, store.DriverS3, st.Driver())
}
