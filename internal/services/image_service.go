package services

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ImageService handles image processing and storage for property photos and
// user avatars.
type ImageService struct {
	uploadDir string
}

func NewImageService(uploadDir string) *ImageService {
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		_ = os.MkdirAll(uploadDir, 0755)
	}
	return &ImageService{
		uploadDir: uploadDir,
	}
}

// ProcessAndSaveAvatar saves the original image and a 128px square thumbnail
func (s *ImageService) ProcessAndSaveAvatar(file multipart.File, header *multipart.FileHeader) (originalPath, thumbnailPath string, err error) {
	return s.process(file, header, func(img image.Image) image.Image {
		return imaging.Fill(img, 128, 128, imaging.Center, imaging.Lanczos)
	})
}

// ProcessAndSavePropertyImage saves the original photo and a card-sized
// variant. Aspect ratio is preserved for property photos.
func (s *ImageService) ProcessAndSavePropertyImage(file multipart.File, header *multipart.FileHeader) (originalPath, thumbnailPath string, err error) {
	return s.process(file, header, func(img image.Image) image.Image {
		return imaging.Fit(img, 640, 480, imaging.Lanczos)
	})
}

func (s *ImageService) process(file multipart.File, header *multipart.FileHeader, resize func(image.Image) image.Image) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", "", fmt.Errorf("formato de imagem não suportado (apenas JPG/PNG)")
	}

	filename := uuid.New().String()
	originalFilename := filename + ext
	thumbFilename := filename + "_thumb" + ext

	// Paths are relative to the upload root, served statically under /uploads.
	originalRelPath := "/uploads/" + originalFilename
	thumbRelPath := "/uploads/" + thumbFilename

	img, _, err := image.Decode(file)
	if err != nil {
		return "", "", fmt.Errorf("erro ao decodificar imagem: %w", err)
	}

	// Copy the original stream to disk untouched; decoding above already
	// validated it.
	if _, err := file.Seek(0, 0); err != nil {
		return "", "", fmt.Errorf("erro ao ler arquivo: %w", err)
	}

	outOriginalPath := filepath.Join(s.uploadDir, originalFilename)
	outOriginal, err := os.Create(outOriginalPath)
	if err != nil {
		return "", "", fmt.Errorf("erro ao criar arquivo: %w", err)
	}
	defer outOriginal.Close()

	if _, err := io.Copy(outOriginal, file); err != nil {
		return "", "", fmt.Errorf("erro ao salvar imagem original: %w", err)
	}

	thumbImg := resize(img)

	outThumbPath := filepath.Join(s.uploadDir, thumbFilename)
	outThumb, err := os.Create(outThumbPath)
	if err != nil {
		return "", "", fmt.Errorf("erro ao criar miniatura: %w", err)
	}
	defer outThumb.Close()

	if ext == ".png" {
		err = png.Encode(outThumb, thumbImg)
	} else {
		err = jpeg.Encode(outThumb, thumbImg, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return "", "", fmt.Errorf("erro ao salvar miniatura: %w", err)
	}

	// Timestamp query param busts stale browser caches after re-upload.
	ts := fmt.Sprintf("%d", time.Now().Unix())
	return originalRelPath + "?t=" + ts, thumbRelPath + "?t=" + ts, nil
}
