package usecase

import "testing"

func TestExtractProduct(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      string
	}{
		{"want to buy with article", "I want to buy a Samsung phone", "Samsung phone"},
		{"find with filler words", "find me a blue jean", "blue jean"},
		{"order phrasing", "order the HP laptop", "HP laptop"},
		{"purchase phrasing", "purchase an infinix hot 40i", "infinix hot 40i"},
		{"noun phrase fallback", "blue jean please", "blue jean"},
		{"fetch trigger yields nothing", "fetch it from jumia", ""},
		{"bare confirmation yields nothing", "yes jumia", ""},
		{"greeting yields nothing", "hello", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractProduct(tt.utterance); got != tt.want {
				t.Errorf("ExtractProduct(%q) = %q, want %q", tt.utterance, got, tt.want)
			}
		})
	}
}

func TestStripBrandTokens(t *testing.T) {
	tests := []struct {
		name    string
		product string
		want    string
	}{
		{"strips leading brand", "Samsung phone", "phone"},
		{"strips mid-phrase brand", "new Tecno smartphone", "new smartphone"},
		{"keeps iphone", "iphone 13 pro", "iphone 13 pro"},
		{"no brand unchanged", "blue jean", "blue jean"},
		{"all-brand phrase kept", "Samsung", "Samsung"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripBrandTokens(tt.product); got != tt.want {
				t.Errorf("StripBrandTokens(%q) = %q, want %q", tt.product, got, tt.want)
			}
		})
	}
}

func TestExtractBrand(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      string
	}{
		{"samsung", "I want a Samsung phone", "Samsung"},
		{"iphone maps to Apple", "buy an iPhone 13", "Apple"},
		{"tecno", "a tecno spark please", "Tecno"},
		{"no brand", "a blue jean", ""},
		{"first alias wins", "samsung or tecno", "Samsung"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractBrand(tt.utterance); got != tt.want {
				t.Errorf("ExtractBrand(%q) = %q, want %q", tt.utterance, got, tt.want)
			}
		})
	}
}

func TestMentionsNonElectronics(t *testing.T) {
	tests := []struct {
		product string
		want    bool
	}{
		{"leather bag", true},
		{"running sneakers", true},
		{"blue jeans", true},
		{"Samsung phone", false},
		{"HP laptop", false},
	}

	for _, tt := range tests {
		if got := mentionsNonElectronics(tt.product); got != tt.want {
			t.Errorf("mentionsNonElectronics(%q) = %v, want %v", tt.product, got, tt.want)
		}
	}
}
