package config

// DefaultExtractionPrompt: %[1]s destination, %[2]s place descriptors.
const DefaultExtractionPrompt = `Based on the following information about tourist attractions in %[1]s, extract a highly detailed knowledge graph in TSV format that captures diverse relationships between attractions, their history, significance, and travel-related insights.
%[2]s

Format:
Create a TSV with the following columns:

Node_1: The name of the entity (e.g., attraction, person, event, historical figure, location, year).
Relation: The relationship between Node_1 and Node_2 (e.g., LOCATED_IN, BUILT_IN, KNOWN_FOR, DESIGNED_BY, INFLUENCED_BY, HAS_EVENT, CULTURAL_IMPORTANCE, RECOMMENDED_ACTIVITY).
Node_2: The entity that Node_1 is related to.
Node_1_Type: The type of Node_1 (e.g., Attraction, Landmark, Event, Architect, Year, Culture, TravelTip).
Node_2_Type: The type of Node_2 (e.g., Location, AttractionType, Architect, Year, CulturalAspect, RecommendedActivity).
Attributes: A JSON string with additional information (e.g., opening hours, ticket price, notable facts, visiting tips).

Guidelines:
Extract at least 8 relationships per attraction to create a dense knowledge graph.
Include core travel-related information such as:
Best time to visit (e.g., "Eiffel Tower" -> BEST_VISITED_IN -> "Evening")
Famous events held there (e.g., "Sydney Opera House" -> HOSTS_EVENT -> "Vivid Sydney Festival")
Recommended activities (e.g., "Grand Canyon" -> RECOMMENDED_ACTIVITY -> "Hiking")
Nearby attractions (e.g., "Louvre Museum" -> NEARBY_ATTRACTION -> "Seine River")
Historical significance (e.g., "Colosseum" -> HISTORIC_IMPORTANCE -> "Gladiator battles")
Influences (e.g., "Taj Mahal" -> INFLUENCED_BY -> "Mughal Architecture")
Travel insights (e.g., "Machu Picchu" -> TRAVEL_TIP -> "Get tickets in advance")
Connect each attraction to the country it belongs to, its UNESCO heritage status if any, and notable designers, rulers or figures associated with it.

Output:
Return only the TSV content, without markdown formatting or extra text.
The first line must be the header row.`

// DefaultRankingPrompt: %[1]s all place names, %[2]s source, %[3]s
// destination, %[4]s departure date, %[5]s return date, %[6]s budget,
// %[7]s interests, %[8]s knowledge graph evidence.
const DefaultRankingPrompt = `You are a travel expert and your task is to recommend specific places based on the user's destination, budget, and interests.
You are given a list of places and related details extracted from a Knowledge Graph. Filter the relevant places from the data and return a JSON list containing only the exact names of the places, ensuring that the recommendations align with the user's preferences.

USER Data:
Total list of places: %[1]s
Source information: %[2]s
Destination: %[3]s
Departure Date: %[4]s
Return Date: %[5]s
Budget: %[6]s
Description of the user's interests: %[7]s

Knowledge Graph Data:
%[8]s`

// DefaultItineraryPrompt: %[1]s user input, %[2]s selected places.
const DefaultItineraryPrompt = `You are an event planner and your task is to plan a series of events for a group of tourists.
%[1]s
Plan a series of events that will provide a memorable experience for the group. The group is interested in exploring the places listed below.
Selected Places: %[2]s
Return a smart plan as a JSON list with the structure shown below, containing the events and activities that the group should participate in. Include the locations, details, timings, famous activities, total duration, recommended transport, and additional notes.
[
  {
    "place_id": 0,
    "name": "Burj Khalifa",
    "details": "The tallest building in the world. Start early to avoid long queues for the observation deck.",
    "timing": "9:00 AM to 10:30 AM",
    "famous_activity": "Photoshoots",
    "total_duration": "1-2 hours",
    "recommended_transport": "Taxi",
    "additional_notes": "Bring a camera and water."
  }
]`
