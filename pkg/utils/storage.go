package utils

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
)

// Bucket foto. Byte fotonya gak pernah lewat server kita,
// client upload/download langsung ke bucket pakai signed URL.
var storageBucket *storage.BucketHandle

// SignedURLTTL = umur link upload/download. Dibuat per request, gak di-cache.
const SignedURLTTL = 15 * time.Minute

func initStorage(app *firebase.App) {
	client, err := app.Storage(context.Background())
	if err != nil {
		log.Fatalf("Error getting storage client: %v", err)
	}

	bucket, err := client.DefaultBucket()
	if err != nil {
		log.Fatalf("Error getting default bucket: %v", err)
	}
	storageBucket = bucket
}

// GenerateUploadURL bikin link upload (PUT) sementara untuk satu objek
func GenerateUploadURL(objectPath string, contentType string) (string, error) {
	if storageBucket == nil {
		return "", nil // Storage belum di-init (testing), balikin kosong
	}

	return storageBucket.SignedURL(objectPath, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      "PUT",
		ContentType: contentType,
		Expires:     time.Now().Add(SignedURLTTL),
	})
}

// GenerateDownloadURL bikin link download (GET) sementara untuk satu objek
func GenerateDownloadURL(objectPath string) (string, error) {
	if storageBucket == nil {
		return "", nil
	}

	return storageBucket.SignedURL(objectPath, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(SignedURLTTL),
	})
}
