package services

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"os"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/types"
)

type AvatarService interface {
	CreateAndUploadUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error
	CreateAndUploadUserAvatarFromImage(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error
	GenerateUserAvatar(user *types.User) (bytes.Buffer, error)
}

type avatarService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	bucketService BucketService

	bgColors []color.NRGBA
	fontFace font.Face
}

// Fixed palette; the color is picked deterministically from the username so a
// user keeps the same background across regenerations.
var avatarPalette = []color.NRGBA{
	{R: 0x1E, G: 0x6F, B: 0x9E, A: 0xFF},
	{R: 0xC0, G: 0x5B, B: 0x2E, A: 0xFF},
	{R: 0x2E, G: 0x8B, B: 0x57, A: 0xFF},
	{R: 0x7A, G: 0x4F, B: 0x9E, A: 0xFF},
	{R: 0xB0, G: 0x3A, B: 0x48, A: 0xFF},
	{R: 0x2F, G: 0x4F, B: 0x6F, A: 0xFF},
	{R: 0x8A, G: 0x6D, B: 0x1E, A: 0xFF},
}

func NewAvatarService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, bucketService BucketService) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	fontPath := os.Getenv("AVATAR_FONT")
	if strings.TrimSpace(fontPath) == "" {
		return nil, fmt.Errorf("env var AVATAR_FONT is empty")
	}
	serviceLog.Info("Loading avatar font", "font", fontPath)

	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar font: %w", err)
	}

	return &avatarService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		bucketService: bucketService,
		bgColors:      avatarPalette,
		fontFace:      face,
	}, nil
}

func (as *avatarService) CreateAndUploadUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error {
	buf, err := as.GenerateUserAvatar(user)
	if err != nil {
		return err
	}

	oldKey := strings.TrimSpace(user.AvatarBucketKey)
	newKey := fmt.Sprintf("user_avatar/%s/%d.png", user.ID.String(), time.Now().UnixNano())

	if err := as.bucketService.UploadFile(ctx, newKey, "image/png", bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("failed to upload user avatar: %w", err)
	}

	user.AvatarBucketKey = newKey
	user.AvatarURL = as.bucketService.GetPublicURL(newKey)

	if err := as.userRepo.UpdateAvatarFields(ctx, tx, user.ID, newKey, user.AvatarURL); err != nil {
		return err
	}

	// Best-effort delete of the old object once the new one is live.
	if oldKey != "" && oldKey != newKey {
		if err := as.bucketService.DeleteFile(ctx, oldKey); err != nil {
			as.log.Warn("Failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
		}
	}

	return nil
}

func (as *avatarService) CreateAndUploadUserAvatarFromImage(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error {
	if user == nil || user.ID == uuid.Nil {
		return fmt.Errorf("user required")
	}

	processed, err := processUploadedAvatar(raw, 512)
	if err != nil {
		return err
	}

	oldKey := strings.TrimSpace(user.AvatarBucketKey)
	newKey := fmt.Sprintf("user_avatar/%s/%d.png", user.ID.String(), time.Now().UnixNano())

	if err := as.bucketService.UploadFile(ctx, newKey, "image/png", bytes.NewReader(processed.Bytes())); err != nil {
		return fmt.Errorf("failed to upload user avatar: %w", err)
	}

	user.AvatarBucketKey = newKey
	user.AvatarURL = as.bucketService.GetPublicURL(newKey)

	if err := as.userRepo.UpdateAvatarFields(ctx, tx, user.ID, newKey, user.AvatarURL); err != nil {
		return err
	}

	if oldKey != "" && oldKey != newKey {
		if err := as.bucketService.DeleteFile(ctx, oldKey); err != nil {
			as.log.Warn("Failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
		}
	}

	return nil
}

func (as *avatarService) GenerateUserAvatar(user *types.User) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	base := as.colorFor(user.Username)
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(user.Username)

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func (as *avatarService) colorFor(username string) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(username))))
	return as.bgColors[int(h.Sum32())%len(as.bgColors)]
}

func processUploadedAvatar(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	// Center-crop to square
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	side := w
	if h < w {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	// Resize to NxN
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	// Circle clip
	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()
	dc.DrawImage(dst, 0, 0)

	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}

	return out, nil
}

func computeInitials(username string) string {
	u := strings.TrimSpace(username)
	if u == "" {
		return "?"
	}
	if len(u) == 1 {
		return strings.ToUpper(u)
	}
	return strings.ToUpper(u[:2])
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, nil
}
