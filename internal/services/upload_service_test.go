package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkspot_backend/internal/config"
	"inkspot_backend/internal/imageprocessor"
	"inkspot_backend/internal/services/dto"
	"inkspot_backend/pkg/apperrors"
)

// fakeObjectStore реализует storage.Storage в памяти
type fakeObjectStore struct {
	saveErr error
	saved   map[string][]byte
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{saved: make(map[string][]byte)}
}

func (f *fakeObjectStore) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.saved[path] = data
	return nil
}

func (f *fakeObjectStore) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := f.saved[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, path string) error {
	delete(f.saved, path)
	return nil
}

func (f *fakeObjectStore) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := f.saved[path]
	return ok, nil
}

func (f *fakeObjectStore) GetURL(ctx context.Context, path string) (string, error) {
	return "public://" + path, nil
}

func (f *fakeObjectStore) GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "signed://" + path, nil
}

func (f *fakeObjectStore) GetSize(ctx context.Context, path string) (int64, error) {
	return int64(len(f.saved[path])), nil
}

func newUploadFixture(t *testing.T) (*fakeObjectStore, UploadService) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Upload.MaxArtworkSize = 10 * 1024
	cfg.Upload.MaxAttachmentSize = 1024
	cfg.Upload.CompressThreshold = 500 * 1024
	cfg.Upload.MaxImageDimension = 1000
	cfg.Upload.ImageQuality = 80

	store := newFakeObjectStore()
	processor := imageprocessor.NewProcessor(
		cfg.Upload.MaxImageDimension,
		cfg.Upload.ImageQuality,
		cfg.Upload.CompressThreshold,
	)
	return store, NewUploadService(store, processor, cfg)
}

// multipartFile собирает *multipart.FileHeader так же, как его отдает
// gin из формы запроса
func multipartFile(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["file"][0]
}

// pngPayload кодирует маленький PNG и добивает его до minSize байт.
// Декодер останавливается на IEND, хвост ему не мешает.
func pngPayload(t *testing.T, minSize int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	data := buf.Bytes()
	if len(data) < minSize {
		data = append(data, bytes.Repeat([]byte{0x00}, minSize-len(data))...)
	}
	return data
}

func TestUploadImage_PerKindSizeLimits(t *testing.T) {
	_, svc := newUploadFixture(t)
	file := multipartFile(t, "ref.png", "image/png", pngPayload(t, 2048))

	// 2KB выше лимита вложений, но в пределах лимита артворков
	_, err := svc.UploadImage(context.Background(), dto.UploadKindChat, file)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeLimitExceeded, appErr.Code)

	resp, err := svc.UploadImage(context.Background(), dto.UploadKindArtwork, file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Path, "artwork/"))
}

func TestUploadImage_RejectsNonImages(t *testing.T) {
	store, svc := newUploadFixture(t)

	text := multipartFile(t, "notes.txt", "text/plain", []byte("definitely text"))
	_, err := svc.UploadImage(context.Background(), dto.UploadKindArtwork, text)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	// Заявленный image/* тип не спасает неразбираемые байты
	fakeImage := multipartFile(t, "broken.png", "image/png", []byte("not a png"))
	_, err = svc.UploadImage(context.Background(), dto.UploadKindArtwork, fakeImage)
	require.Error(t, err)

	assert.Empty(t, store.saved)
}

func TestUploadImage_StorageFailureAborts(t *testing.T) {
	store, svc := newUploadFixture(t)
	store.saveErr = errors.New("bucket unavailable")

	file := multipartFile(t, "ref.png", "image/png", pngPayload(t, 0))
	_, err := svc.UploadImage(context.Background(), dto.UploadKindArtwork, file)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInternalError, appErr.Code)
	assert.Empty(t, store.saved)
}

func TestUploadImage_PrivateKindsGetSignedURL(t *testing.T) {
	_, svc := newUploadFixture(t)

	chatFile := multipartFile(t, "photo.png", "image/png", pngPayload(t, 0))
	chatResp, err := svc.UploadImage(context.Background(), dto.UploadKindChat, chatFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(chatResp.URL, "signed://chat/"), chatResp.URL)

	artworkFile := multipartFile(t, "piece.png", "image/png", pngPayload(t, 0))
	artworkResp, err := svc.UploadImage(context.Background(), dto.UploadKindArtwork, artworkFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(artworkResp.URL, "public://artwork/"), artworkResp.URL)
}
