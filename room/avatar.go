package room

import "math/rand"

// Avatar 视觉形象：表情图片 + 主题色
type Avatar struct {
	Img   string `json:"img"`
	Color string `json:"color"`
}

// masterDeck 服务端的形象总库。每个新房间拿到一份拷贝作为可用池。
var masterDeck = []Avatar{
	{Img: "https://cdn.jsdelivr.net/npm/emoji-datasource-apple@14.0.0/img/apple/64/1f984.png", Color: "#bd93f9"},
	{Img: "https://cdn.jsdelivr.net/npm/emoji-datasource-apple@14.0.0/img/apple/64/1f981.png", Color: "#ffb86c"},
	{Img: "https://cdn.jsdelivr.net/npm/emoji-datasource-apple@14.0.0/img/apple/64/1f42f.png", Color: "#ff5555"},
	{Img: "https://cdn.jsdelivr.net/npm/emoji-datasource-apple@14.0.0/img/apple/64/1f43c.png", Color: "#f8f8f2"},
	{Img: "https://cdn.jsdelivr.net/npm/emoji-datasource-apple@14.0.0/img/apple/64/1f98a.png", Color: "#ffb86c"},
	{Img: "https://cdn.jsdelivr.net/npm/emoji-datasource-apple@14.0.0/img/apple/64/1f43a.png", Color: "#8be9fd"},
	{Img: "https://cdn.jsdelivr.net/npm/emoji-datasource-apple@14.0.0/img/apple/64/1f438.png", Color: "#50fa7b"},
	{Img: "https://cdn.jsdelivr.net/npm/emoji-datasource-apple@14.0.0/img/apple/64/1f47d.png", Color: "#50fa7b"},
	{Img: "https://cdn.jsdelivr.net/npm/emoji-datasource-apple@14.0.0/img/apple/64/1f996.png", Color: "#50fa7b"},
	{Img: "https://cdn.jsdelivr.net/npm/emoji-datasource-apple@14.0.0/img/apple/64/1f419.png", Color: "#bd93f9"},
	{Img: "https://cdn.jsdelivr.net/npm/emoji-datasource-apple@14.0.0/img/apple/64/1f989.png", Color: "#6272a4"},
	{Img: "https://cdn.jsdelivr.net/npm/emoji-datasource-apple@14.0.0/img/apple/64/1f436.png", Color: "#ffb86c"},
}

// MasterDeckSize 总库大小
func MasterDeckSize() int {
	return len(masterDeck)
}

// newAvatarPool 复制一份总库
func newAvatarPool() []Avatar {
	pool := make([]Avatar, len(masterDeck))
	copy(pool, masterDeck)
	return pool
}

// AssignAvatar 从房间可用池随机取出一个形象（独占）。池空时退化为
// 从总库随机取一个共享使用，不做任何移除。Caller must hold the room lock.
func (r *Room) AssignAvatar() Avatar {
	if len(r.AvailableAvatars) > 0 {
		i := rand.Intn(len(r.AvailableAvatars))
		avatar := r.AvailableAvatars[i]
		r.AvailableAvatars = append(r.AvailableAvatars[:i], r.AvailableAvatars[i+1:]...)
		return avatar
	}
	return masterDeck[rand.Intn(len(masterDeck))]
}

// ReleaseAvatar 玩家离开时把形象还回池子。不去重：走过共享降级路径的
// 形象被释放后池内可能出现重复。
func (r *Room) ReleaseAvatar(avatar Avatar) {
	r.AvailableAvatars = append(r.AvailableAvatars, avatar)
}
