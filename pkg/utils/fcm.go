package utils

import (
	"context"
	"log"
	"os"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

var (
	firebaseApp *firebase.App
	fcmClient   *messaging.Client
)

// InitFirebase menginisialisasi koneksi ke Firebase (FCM + Storage)
func InitFirebase() {
	serviceAccountPath := os.Getenv("FIREBASE_CREDENTIALS")
	if serviceAccountPath == "" {
		serviceAccountPath = "fotoshare-service-account.json"
	}

	opt := option.WithCredentialsFile(serviceAccountPath)
	cfg := &firebase.Config{
		StorageBucket: os.Getenv("FIREBASE_STORAGE_BUCKET"),
	}

	app, err := firebase.NewApp(context.Background(), cfg, opt)
	if err != nil {
		log.Fatalf("Error initializing firebase app: %v", err)
	}
	firebaseApp = app

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Fatalf("Error getting messaging client: %v", err)
	}
	fcmClient = client

	initStorage(app)
	log.Println("Firebase Ready! (FCM + Storage)")
}

// SendNotification mengirim pesan ke satu device (FCM Token)
// Handler yang tanggung jawab ambil token dari DB, utils murni urusan Firebase
func SendNotification(token string, title string, body string, data map[string]string) error {
	if fcmClient == nil {
		return nil // Firebase belum di-init (misal pas testing), skip aja
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data, // Data tambahan (misal: share_id: "123")
	}

	_, err := fcmClient.Send(context.Background(), message)
	if err != nil {
		log.Printf("Error sending message: %s", err)
		return err
	}

	return nil
}
