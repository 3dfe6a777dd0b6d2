package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Game is a catalogue document in the games collection
type Game struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	GameData `bson:",inline"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// GameData holds the client supplied fields of a game
type GameData struct {
	AppID               int64  `json:"appId" bson:"appId" validate:"required,gt=0"`
	Type                string `json:"type,omitempty" bson:"type,omitempty" validate:"omitempty,max=50"`
	Name                string `json:"name" bson:"name" validate:"required,min=1,max=500"`
	RequiredAge         int    `json:"requiredAge" bson:"requiredAge" validate:"gte=0"`
	IsFree              bool   `json:"isFree" bson:"isFree"`
	DetailedDescription string `json:"detailedDescription,omitempty" bson:"detailedDescription,omitempty"`
	AboutTheGame        string `json:"aboutTheGame,omitempty" bson:"aboutTheGame,omitempty"`
	ShortDescription    string `json:"shortDescription,omitempty" bson:"shortDescription,omitempty" validate:"omitempty,max=1000"`

	HeaderImage    string `json:"headerImage,omitempty" bson:"headerImage,omitempty" validate:"omitempty,url"`
	CapsuleImage   string `json:"capsuleImage,omitempty" bson:"capsuleImage,omitempty" validate:"omitempty,url"`
	CapsuleImageV5 string `json:"capsuleImagev5,omitempty" bson:"capsuleImagev5,omitempty" validate:"omitempty,url"`
	Background     string `json:"background,omitempty" bson:"background,omitempty" validate:"omitempty,url"`
	BackgroundRaw  string `json:"backgroundRaw,omitempty" bson:"backgroundRaw,omitempty" validate:"omitempty,url"`
	Website        string `json:"website,omitempty" bson:"website,omitempty" validate:"omitempty,url"`

	Screenshots []Screenshot `json:"screenshots,omitempty" bson:"screenshots,omitempty" validate:"omitempty,dive"`
	Movies      []Movie      `json:"movies,omitempty" bson:"movies,omitempty" validate:"omitempty,dive"`
	Categories  []Category   `json:"categories,omitempty" bson:"categories,omitempty"`
	Genres      []Genre      `json:"genres,omitempty" bson:"genres,omitempty"`
	Developers  []string     `json:"developers,omitempty" bson:"developers,omitempty"`
	Publishers  []string     `json:"publishers,omitempty" bson:"publishers,omitempty"`

	PCRequirements    *Requirements `json:"pcRequirements,omitempty" bson:"pcRequirements,omitempty"`
	MacRequirements   *Requirements `json:"macRequirements,omitempty" bson:"macRequirements,omitempty"`
	LinuxRequirements *Requirements `json:"linuxRequirements,omitempty" bson:"linuxRequirements,omitempty"`
	Platforms         *Platforms    `json:"platforms" bson:"platforms" validate:"required"`
	ReleaseDate       *ReleaseDate  `json:"releaseDate" bson:"releaseDate" validate:"required"`

	Packages           []int64             `json:"packages,omitempty" bson:"packages,omitempty"`
	PriceOverview      *PriceOverview      `json:"priceOverview,omitempty" bson:"priceOverview,omitempty"`
	Achievements       *Achievements       `json:"achievements,omitempty" bson:"achievements,omitempty"`
	Recommendations    *Recommendations    `json:"recommendations,omitempty" bson:"recommendations,omitempty"`
	Reviews            string              `json:"reviews,omitempty" bson:"reviews,omitempty"`
	Languages          []string            `json:"languages,omitempty" bson:"languages,omitempty"`
	SupportedLanguages string              `json:"supportedLanguages,omitempty" bson:"supportedLanguages,omitempty"`
	ContentDescriptors *ContentDescriptors `json:"contentDescriptors,omitempty" bson:"contentDescriptors,omitempty"`
	SupportInfo        *SupportInfo        `json:"supportInfo,omitempty" bson:"supportInfo,omitempty"`
	Metacritic         *Metacritic         `json:"metacritic,omitempty" bson:"metacritic,omitempty"`
	DLC                []int64             `json:"dlc,omitempty" bson:"dlc,omitempty"`
	Tags               []string            `json:"tags,omitempty" bson:"tags,omitempty"`
}

type Screenshot struct {
	ID            int64  `json:"id" bson:"id"`
	PathThumbnail string `json:"pathThumbnail" bson:"pathThumbnail" validate:"omitempty,url"`
	PathFull      string `json:"pathFull" bson:"pathFull" validate:"omitempty,url"`
}

type Movie struct {
	ID        int64             `json:"id" bson:"id"`
	Name      string            `json:"name" bson:"name"`
	Thumbnail string            `json:"thumbnail,omitempty" bson:"thumbnail,omitempty" validate:"omitempty,url"`
	Webm      map[string]string `json:"webm,omitempty" bson:"webm,omitempty"`
	Mp4       map[string]string `json:"mp4,omitempty" bson:"mp4,omitempty"`
	Highlight bool              `json:"highlight" bson:"highlight"`
}

type Category struct {
	ID          int64  `json:"id" bson:"id"`
	Description string `json:"description" bson:"description"`
}

type Genre struct {
	ID          string `json:"id" bson:"id"`
	Description string `json:"description" bson:"description"`
}

type Requirements struct {
	Minimum     string `json:"minimum,omitempty" bson:"minimum,omitempty"`
	Recommended string `json:"recommended,omitempty" bson:"recommended,omitempty"`
}

type Platforms struct {
	Windows bool `json:"windows" bson:"windows"`
	Mac     bool `json:"mac" bson:"mac"`
	Linux   bool `json:"linux" bson:"linux"`
}

type ReleaseDate struct {
	ComingSoon bool   `json:"comingSoon" bson:"comingSoon"`
	Date       string `json:"date" bson:"date"`
}

type PriceOverview struct {
	Currency         string `json:"currency" bson:"currency"`
	Initial          int64  `json:"initial" bson:"initial"`
	Final            int64  `json:"final" bson:"final"`
	DiscountPercent  int    `json:"discountPercent" bson:"discountPercent"`
	InitialFormatted string `json:"initialFormatted,omitempty" bson:"initialFormatted,omitempty"`
	FinalFormatted   string `json:"finalFormatted,omitempty" bson:"finalFormatted,omitempty"`
}

type Achievements struct {
	Total       int           `json:"total" bson:"total"`
	Highlighted []Achievement `json:"highlighted,omitempty" bson:"highlighted,omitempty"`
}

type Achievement struct {
	Name string `json:"name" bson:"name"`
	Path string `json:"path" bson:"path"`
}

type Recommendations struct {
	Total int64 `json:"total" bson:"total"`
}

type ContentDescriptors struct {
	IDs   []int  `json:"ids,omitempty" bson:"ids,omitempty"`
	Notes string `json:"notes,omitempty" bson:"notes,omitempty"`
}

type SupportInfo struct {
	URL   string `json:"url,omitempty" bson:"url,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

type Metacritic struct {
	Score int    `json:"score" bson:"score"`
	URL   string `json:"url,omitempty" bson:"url,omitempty"`
}
