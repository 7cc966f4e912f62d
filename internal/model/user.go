package model

import "time"

// 吉祥物形状
const (
	ShapeCircle   = "circle"
	ShapeSquircle = "squircle"
	ShapeHexagon  = "hexagon"
)

// 吉祥物风格
const (
	StyleMinimal = "minimal"
	StyleCute    = "cute"
	StyleRobot   = "robot"
)

// 吉祥物动画
const (
	AnimationBounce = "bounce"
	AnimationPulse  = "pulse"
	AnimationWave   = "wave"
)

// User 用户
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Avatar       AvatarSettings `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// AvatarSettings 吉祥物外观设置
// 纯展示配置，更新时整体替换
type AvatarSettings struct {
	PrimaryColor   string `gorm:"size:50" json:"primaryColor"`
	SecondaryColor string `gorm:"size:50" json:"secondaryColor"`
	Shape          string `gorm:"size:20" json:"shape"`
	Style          string `gorm:"size:20" json:"style"`
	Animation      string `gorm:"size:20" json:"animation"`
}

// DefaultAvatarSettings 默认吉祥物设置
func DefaultAvatarSettings() AvatarSettings {
	return AvatarSettings{
		PrimaryColor:   "#6366f1",
		SecondaryColor: "#a5b4fc",
		Shape:          ShapeCircle,
		Style:          StyleCute,
		Animation:      AnimationBounce,
	}
}

// ValidShape 判断形状是否合法
func ValidShape(shape string) bool {
	switch shape {
	case ShapeCircle, ShapeSquircle, ShapeHexagon:
		return true
	}
	return false
}

// ValidStyle 判断风格是否合法
func ValidStyle(style string) bool {
	switch style {
	case StyleMinimal, StyleCute, StyleRobot:
		return true
	}
	return false
}

// ValidAnimation 判断动画是否合法
func ValidAnimation(animation string) bool {
	switch animation {
	case AnimationBounce, AnimationPulse, AnimationWave:
		return true
	}
	return false
}
