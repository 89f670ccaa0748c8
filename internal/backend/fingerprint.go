package backend

import (
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	fakeUA "github.com/lib4u/fake-useragent"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

type ProfileConfig struct {
	Profile    profiles.ClientProfile
	Browser    string
	OS         []string
	FallbackUA string
}

var profileConfigs = map[string]ProfileConfig{
	"chrome_133":      {profiles.Chrome_133, "Chrome", []string{"Windows", "Mac OS X", "Linux"}, "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36"},
	"chrome_131":      {profiles.Chrome_131, "Chrome", []string{"Windows", "Mac OS X", "Linux"}, "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"},
	"chrome_124":      {profiles.Chrome_124, "Chrome", []string{"Windows", "Mac OS X"}, "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"},
	"chrome_120":      {profiles.Chrome_120, "Chrome", []string{"Windows", "Mac OS X"}, "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"},
	"firefox_135":     {profiles.Firefox_135, "Firefox", []string{"Windows", "Mac OS X", "Linux"}, "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:135.0) Gecko/20100101 Firefox/135.0"},
	"firefox_133":     {profiles.Firefox_133, "Firefox", []string{"Windows", "Mac OS X", "Linux"}, "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0"},
	"firefox_123":     {profiles.Firefox_123, "Firefox", []string{"Windows", "Mac OS X"}, "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:123.0) Gecko/20100101 Firefox/123.0"},
	"safari_16_0":     {profiles.Safari_16_0, "Safari", []string{"Mac OS X"}, "Mozilla/5.0 (Macintosh; Intel Mac OS X 13_0) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Safari/605.1.15"},
	"safari_ios_18_0": {profiles.Safari_IOS_18_0, "Safari", []string{"iOS"}, "Mozilla/5.0 (iPhone; CPU iPhone OS 18_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.0 Mobile/15E148 Safari/604.1"},
	"opera_91":        {profiles.Opera_91, "Opera", []string{"Windows", "Mac OS X"}, "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/105.0.0.0 Safari/537.36 OPR/91.0.0.0"},
}

var (
	uaOnce      sync.Once
	uaMu        sync.Mutex
	uaGenerator *fakeUA.UserAgent
	rng         = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// LookupProfile resolves a CLIENT_PROFILE name such as "chrome_120".
func LookupProfile(name string) (ProfileConfig, error) {
	config, ok := profileConfigs[name]
	if !ok {
		return ProfileConfig{}, fmt.Errorf("unknown client profile %q (known: %v)", name, ProfileNames())
	}
	return config, nil
}

func ProfileNames() []string {
	names := make([]string, 0, len(profileConfigs))
	for name := range profileConfigs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UserAgentFor returns a browser-matching User-Agent for the profile, falling
// back to the profile's fixed string when the generator is unavailable.
func UserAgentFor(config ProfileConfig) string {
	uaOnce.Do(func() {
		var err error
		uaGenerator, err = fakeUA.New()
		if err != nil {
			log.Printf("[Backend] Warning: Failed to init fake-useragent, using fallbacks: %v", err)
		}
	})

	if uaGenerator == nil {
		return config.FallbackUA
	}

	uaMu.Lock()
	defer uaMu.Unlock()

	selectedOS := config.OS[rng.Intn(len(config.OS))]

	var ua string
	switch config.Browser {
	case "Chrome":
		ua = uaGenerator.Filter().Chrome().Os(selectedOS).Get()
	case "Firefox":
		ua = uaGenerator.Filter().Firefox().Os(selectedOS).Get()
	case "Safari":
		ua = uaGenerator.Filter().Safari().Os(selectedOS).Get()
	case "Opera":
		ua = uaGenerator.Filter().Opera().Os(selectedOS).Get()
	default:
		ua = uaGenerator.Filter().Os(selectedOS).Get()
	}

	if ua == "" {
		return config.FallbackUA
	}
	return ua
}

// ClientOptions builds the tls-client options for a profile. A timeout of
// zero leaves the request unbounded.
func ClientOptions(config ProfileConfig, timeoutSeconds int) []tls_client.HttpClientOption {
	return []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(timeoutSeconds),
		tls_client.WithClientProfile(config.Profile),
		tls_client.WithNotFollowRedirects(),
		tls_client.WithCookieJar(tls_client.NewCookieJar()),
	}
}
