package shaders

// TraceVertex positions scene geometry with a flat world transform: uniform
// offset, z rotation and scale per node, orthographic projection by the
// viewport half extents.
const TraceVertex = `
#version 410 core

layout (location = 0) in vec3 position;
layout (location = 1) in float alpha;
layout (location = 2) in float side;
layout (location = 3) in float progress;

uniform vec3 offset;
uniform float rotation;
uniform float nodeScale;
uniform vec2 viewport;

out float vAlpha;
out float vSide;
out float vProgress;

void main() {
    float s = sin(rotation);
    float c = cos(rotation);
    vec3 world = vec3(
        offset.x + nodeScale * (position.x * c - position.y * s),
        offset.y + nodeScale * (position.x * s + position.y * c),
        offset.z + nodeScale * position.z
    );

    vAlpha = alpha;
    vSide = side;
    vProgress = progress;
    gl_Position = vec4(world.xy / viewport, world.z * 0.1, 1.0);
}
`

// TraceFragment paints a noisy translucency from the side/progress
// coordinates. Opacity multipliers above the solid threshold collapse the
// noise toward flat paint.
const TraceFragment = `
#version 410 core

in float vAlpha;
in float vSide;
in float vProgress;

uniform vec3 color;
uniform float opacityMultiplier;

out vec4 fragColor;

float hash(vec2 p) {
    return fract(sin(dot(p, vec2(127.1, 311.7))) * 43758.5453123);
}

float noise(vec2 p) {
    vec2 i = floor(p);
    vec2 f = fract(p);
    vec2 u = f * f * (3.0 - 2.0 * f);
    return mix(mix(hash(i), hash(i + vec2(1.0, 0.0)), u.x),
               mix(hash(i + vec2(0.0, 1.0)), hash(i + vec2(1.0, 1.0)), u.x),
               u.y);
}

const float solidThreshold = 1.2;

void main() {
    vec2 uv = vec2(vProgress * 24.0, vSide * 3.0);
    float grain = noise(uv) * 0.6 + noise(uv * 2.7) * 0.4;

    float edge = smoothstep(0.0, 0.25, vSide) * smoothstep(1.0, 0.75, vSide);
    float texture = mix(grain * edge, 1.0, clamp(opacityMultiplier - solidThreshold, 0.0, 1.0));

    float a = clamp(texture * vAlpha * opacityMultiplier, 0.0, 1.0);
    fragColor = vec4(color, a);
}
`

const OverlayVertex = `
#version 410 core

layout (location = 0) in vec2 position;

out vec2 vUV;

void main() {
    vUV = position * 0.5 + 0.5;
    gl_Position = vec4(position, 0.0, 1.0);
}
`

// OverlayFragment dims the scene toward black with a soft vignette scaled by
// the composer's ambient intensity.
const OverlayFragment = `
#version 410 core

in vec2 vUV;

uniform float intensity;

out vec4 fragColor;

void main() {
    vec2 centered = vUV - 0.5;
    float vignette = smoothstep(0.2, 0.85, length(centered));
    fragColor = vec4(0.0, 0.0, 0.0, intensity * (0.35 + 0.65 * vignette));
}
`
