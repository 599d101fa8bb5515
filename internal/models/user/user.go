package user

// Credentials тело запросов login и register
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse ответ login и register
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type Profile struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Session то, что клиент хранит локально между запусками
type Session struct {
	Token    string
	Username string
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}
